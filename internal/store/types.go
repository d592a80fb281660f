// Package store persists completed comparison records so hosts can show
// history across restarts.
package store

import (
	"context"
	"time"

	"github.com/prathamdarmwal/ragscope/internal/harness"
)

// Comparison is one stored dispatch snapshot.
type Comparison struct {
	ID        int64              `json:"id"`
	Query     string             `json:"query"`
	Results   *harness.ResultSet `json:"results"`
	Timestamp string             `json:"timestamp"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store defines persistence for comparison records.
type Store interface {
	SaveComparison(ctx context.Context, record *harness.ExportRecord) (int64, error)
	GetComparison(ctx context.Context, id int64) (*Comparison, error)
	ListComparisons(ctx context.Context, limit int) ([]*Comparison, error)
	Close() error
}
