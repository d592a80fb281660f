package harness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prathamdarmwal/ragscope/internal/strategy"
)

// ErrInvalidQuery rejects empty or whitespace-only queries before any
// strategy runs.
var ErrInvalidQuery = errors.New("harness: query is empty")

// Dispatcher runs one query against every registered strategy, strictly
// sequentially in registration order. The first strategy failure aborts the
// whole dispatch; no partial ResultSet is returned.
type Dispatcher struct {
	// Pause is a cosmetic pacing delay after each strategy completes.
	Pause time.Duration
}

func NewDispatcher(pause time.Duration) *Dispatcher {
	return &Dispatcher{Pause: pause}
}

func (d *Dispatcher) Dispatch(ctx context.Context, query string, reg *strategy.Registry) (*ResultSet, error) {
	if d == nil {
		return nil, errors.New("harness: nil dispatcher")
	}
	if ctx == nil {
		return nil, errors.New("harness: nil context")
	}
	if reg == nil {
		return nil, errors.New("harness: nil registry")
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}

	names := reg.Names()
	rs := NewResultSet()
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s, err := reg.Get(name)
		if err != nil {
			return nil, err
		}

		res, err := s.Run(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("harness: strategy %s: %w", name, err)
		}
		if res == nil {
			return nil, fmt.Errorf("harness: strategy %s: nil result", name)
		}
		rs.Add(name, res.Generation)

		if d.Pause > 0 && i < len(names)-1 {
			if err := sleepWithContext(ctx, d.Pause); err != nil {
				return nil, err
			}
		}
	}

	return rs, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
