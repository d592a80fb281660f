// Package retriever provides vector search over the shared knowledge index.
package retriever

import "context"

// Document is one retrieved chunk of context.
type Document struct {
	ID      string  `json:"id,omitempty"`
	Content string  `json:"content"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// Retriever returns the topK most relevant documents for a query.
// Implementations must be safe for concurrent use.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Document, error)
}
