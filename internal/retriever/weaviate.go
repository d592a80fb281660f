package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/prathamdarmwal/ragscope/internal/config"
)

// WeaviateRetriever searches a Weaviate class with nearText semantic search.
// One instance is shared by every retrieval-backed strategy in the process.
type WeaviateRetriever struct {
	client *weaviate.Client
	class  string
}

func NewWeaviateRetriever(cfg config.RetrievalConfig) (*WeaviateRetriever, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, errors.New("retriever: missing weaviate host")
	}
	scheme := strings.TrimSpace(cfg.Scheme)
	if scheme == "" {
		scheme = "http"
	}
	class := strings.TrimSpace(cfg.Class)
	if class == "" {
		return nil, errors.New("retriever: missing weaviate class")
	}

	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		clientCfg.AuthConfig = auth.ApiKey{Value: key}
	}

	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("retriever: new weaviate client: %w", err)
	}

	return &WeaviateRetriever{
		client: client,
		class:  class,
	}, nil
}

func (r *WeaviateRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Document, error) {
	if r == nil || r.client == nil {
		return nil, errors.New("retriever: nil weaviate client")
	}
	if ctx == nil {
		return nil, errors.New("retriever: nil context")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("retriever: empty query")
	}
	if topK <= 0 {
		topK = 4
	}

	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	fields := []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "id"},
			{Name: "distance"},
		}},
	}

	res, err := r.client.GraphQL().Get().
		WithClassName(r.class).
		WithNearText(nearText).
		WithFields(fields...).
		WithLimit(topK).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("retriever: weaviate search: %w", err)
	}
	if err := graphQLErrors(res); err != nil {
		return nil, err
	}

	return parseDocuments(res, r.class), nil
}

func graphQLErrors(res *models.GraphQLResponse) error {
	if res == nil || len(res.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		if e == nil {
			continue
		}
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("retriever: weaviate search: %s", strings.Join(msgs, "; "))
}

func parseDocuments(res *models.GraphQLResponse, class string) []Document {
	if res == nil || res.Data == nil {
		return nil
	}
	get, ok := res.Data["Get"].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := get[class].([]any)
	if !ok {
		return nil
	}

	out := make([]Document, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var doc Document
		if v, ok := m["content"].(string); ok {
			doc.Content = v
		}
		if v, ok := m["source"].(string); ok {
			doc.Source = v
		}
		if add, ok := m["_additional"].(map[string]any); ok {
			if v, ok := add["id"].(string); ok {
				doc.ID = v
			}
			if v, ok := add["distance"].(float64); ok {
				doc.Score = 1 - v
			}
		}

		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		out = append(out, doc)
	}
	return out
}
