// Package strategy defines the pluggable RAG strategy contract and the
// concrete strategies the harness compares: BasicRAG, CRAG, AdaptiveRAG,
// and SelfRAG.
package strategy

import (
	"context"

	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

// Strategy is one retrieval-augmented-generation technique. Strategies are
// constructed once, hold no per-query state visible to callers, and must be
// safe for sequential reuse across queries.
type Strategy interface {
	Name() string
	Run(ctx context.Context, query string) (*Result, error)
}

// Result is the output of one strategy invocation. The harness only reads
// Generation; everything else is diagnostic detail specific to the strategy
// that produced it.
type Result struct {
	Generation string               `json:"generation"`
	Documents  []retriever.Document `json:"documents,omitempty"`

	// Route is set by AdaptiveRAG ("direct" or "retrieve").
	Route string `json:"route,omitempty"`
	// Critique is set by SelfRAG when the first draft was revised.
	Critique string `json:"critique,omitempty"`
	// RewrittenQuery is set by CRAG when the corrective retrieval ran.
	RewrittenQuery string `json:"rewritten_query,omitempty"`
}
