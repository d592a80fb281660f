package strategy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Registry.Get for unregistered strategy names.
var ErrNotFound = errors.New("strategy: not found")

// Registry holds a fixed, ordered set of named strategies. Iteration order
// is registration order and is stable for the life of the registry; it
// determines both dispatch and display order.
type Registry struct {
	order  []string
	byName map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Strategy),
	}
}

// Register adds a strategy under its own name. Empty names and duplicates
// are ignored.
func (r *Registry) Register(s Strategy) {
	if r == nil || s == nil {
		return
	}
	name := strings.TrimSpace(s.Name())
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if r.byName == nil {
		r.byName = make(map[string]Strategy)
	}
	if _, ok := r.byName[key]; ok {
		return
	}
	r.byName[key] = s
	r.order = append(r.order, name)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get looks a strategy up by name, case-insensitively.
func (r *Registry) Get(name string) (Strategy, error) {
	if r == nil || r.byName == nil {
		return nil, fmt.Errorf("strategy: %q: %w", name, ErrNotFound)
	}
	s, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("strategy: %q: %w", name, ErrNotFound)
	}
	return s, nil
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
