package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/llm"
	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

// CRAG is corrective RAG: every retrieved document is graded for relevance
// and, when none survive, the query is rewritten and retrieval runs once
// more before generating.
type CRAG struct {
	provider  llm.Provider
	retriever retriever.Retriever
	topK      int
}

func NewCRAG(p llm.Provider, r retriever.Retriever, topK int) *CRAG {
	if topK <= 0 {
		topK = 4
	}
	return &CRAG{provider: p, retriever: r, topK: topK}
}

func (s *CRAG) Name() string { return "CRAG" }

func (s *CRAG) Run(ctx context.Context, query string) (*Result, error) {
	if s == nil || s.provider == nil || s.retriever == nil {
		return nil, errors.New("strategy: crag: not configured")
	}

	docs, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("strategy: crag: retrieve: %w", err)
	}

	relevant, err := s.gradeDocuments(ctx, query, docs)
	if err != nil {
		return nil, err
	}

	out := &Result{}
	if len(relevant) == 0 {
		rewritten, err := s.rewriteQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		out.RewrittenQuery = rewritten

		relevant, err = s.retriever.Retrieve(ctx, rewritten, s.topK)
		if err != nil {
			return nil, fmt.Errorf("strategy: crag: corrective retrieve: %w", err)
		}
	}

	resp, err := s.provider.Complete(ctx, &llm.Request{
		System:   answerSystem,
		Messages: userMessage(answerPrompt(query, relevant)),
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: crag: generate: %w", err)
	}

	out.Generation = strings.TrimSpace(resp.Text)
	out.Documents = relevant
	return out, nil
}

func (s *CRAG) gradeDocuments(ctx context.Context, query string, docs []retriever.Document) ([]retriever.Document, error) {
	relevant := make([]retriever.Document, 0, len(docs))
	for _, doc := range docs {
		resp, err := s.provider.Complete(ctx, &llm.Request{
			System:   gradeSystem,
			Messages: userMessage(gradePrompt(query, doc)),
		})
		if err != nil {
			return nil, fmt.Errorf("strategy: crag: grade: %w", err)
		}

		var grade struct {
			Relevant bool `json:"relevant"`
		}
		// An ungradable document counts as irrelevant rather than failing
		// the whole run.
		if err := llm.ParseJSON(resp.Text, &grade); err != nil {
			continue
		}
		if grade.Relevant {
			relevant = append(relevant, doc)
		}
	}
	return relevant, nil
}

func (s *CRAG) rewriteQuery(ctx context.Context, query string) (string, error) {
	resp, err := s.provider.Complete(ctx, &llm.Request{
		System:   rewriteSystem,
		Messages: userMessage(rewritePrompt(query)),
	})
	if err != nil {
		return "", fmt.Errorf("strategy: crag: rewrite: %w", err)
	}

	var rewrite struct {
		Query string `json:"query"`
	}
	if err := llm.ParseJSON(resp.Text, &rewrite); err != nil {
		return query, nil
	}
	if q := strings.TrimSpace(rewrite.Query); q != "" {
		return q, nil
	}
	return query, nil
}
