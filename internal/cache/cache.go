// Package cache holds the expensive process-wide resources: the QA dataset
// and the strategy registry. Each is built lazily at most once per process
// and lives until restart.
package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/dataset"
	"github.com/prathamdarmwal/ragscope/internal/strategy"
)

// Resources memoizes the dataset and registry. It is an explicit value
// passed to hosts rather than ambient global state so tests can inject
// fake builders. Construction failures are not cached: a failed build
// surfaces its error and the next call reconstructs from scratch.
type Resources struct {
	buildDataset  func(ctx context.Context) (*dataset.Dataset, error)
	buildRegistry func(ctx context.Context) (*strategy.Registry, error)

	mu  sync.Mutex
	ds  *dataset.Dataset
	reg *strategy.Registry
}

// New wires the default builders from config.
func New(cfg *config.Config) *Resources {
	return NewWithBuilders(
		func(ctx context.Context) (*dataset.Dataset, error) {
			var path string
			if cfg != nil {
				path = cfg.Dataset.Path
			}
			return dataset.Load(ctx, path)
		},
		func(context.Context) (*strategy.Registry, error) {
			return strategy.NewRegistryFromConfig(cfg)
		},
	)
}

// NewWithBuilders wires explicit builders; used by tests.
func NewWithBuilders(
	buildDataset func(ctx context.Context) (*dataset.Dataset, error),
	buildRegistry func(ctx context.Context) (*strategy.Registry, error),
) *Resources {
	return &Resources{
		buildDataset:  buildDataset,
		buildRegistry: buildRegistry,
	}
}

// Dataset returns the memoized dataset, building it on first access. The
// lock serializes concurrent first accesses so the builder runs at most
// once per successful construction.
func (r *Resources) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if r == nil || r.buildDataset == nil {
		return nil, errors.New("cache: no dataset builder")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ds != nil {
		return r.ds, nil
	}
	ds, err := r.buildDataset(ctx)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.New("cache: dataset builder returned nil")
	}
	r.ds = ds
	return ds, nil
}

// Registry returns the memoized strategy registry, building it on first
// access under the same at-most-once guarantee as Dataset.
func (r *Resources) Registry(ctx context.Context) (*strategy.Registry, error) {
	if r == nil || r.buildRegistry == nil {
		return nil, errors.New("cache: no registry builder")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reg != nil {
		return r.reg, nil
	}
	reg, err := r.buildRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, errors.New("cache: registry builder returned nil")
	}
	r.reg = reg
	return reg, nil
}
