package strategy

import (
	"errors"
	"fmt"

	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/llm"
	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

// NewRegistryFromConfig builds the default registry. The retrieval backend
// is constructed exactly once and shared by every retrieval-backed strategy;
// AdaptiveRAG wraps the same SelfRAG instance that is registered.
// Registration order fixes dispatch and display order.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("strategy: nil config")
	}

	provider, err := llm.NewProviderFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ret, err := retriever.NewWeaviateRetriever(cfg.Retrieval)
	if err != nil {
		return nil, fmt.Errorf("strategy: build retriever: %w", err)
	}

	return NewRegistryWith(provider, ret, cfg.Retrieval.TopK), nil
}

// DefaultNames lists the strategies NewRegistryWith registers, in
// registration order, without building providers or retrievers.
func DefaultNames() []string {
	return []string{"BasicRAG", "CRAG", "AdaptiveRAG", "SelfRAG"}
}

// NewRegistryWith wires the four standard strategies onto an explicit
// provider and retriever.
func NewRegistryWith(provider llm.Provider, ret retriever.Retriever, topK int) *Registry {
	selfRAG := NewSelf(provider, ret, topK)

	r := NewRegistry()
	r.Register(NewBasic(provider, ret, topK))
	r.Register(NewCRAG(provider, ret, topK))
	r.Register(NewAdaptive(provider, selfRAG))
	r.Register(selfRAG)
	return r
}
