package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/llm"
)

// Adaptive routes each query: general-knowledge questions are answered by
// the provider directly, domain questions are delegated to the wrapped
// retrieval strategy (SelfRAG in the default registry).
type Adaptive struct {
	provider llm.Provider
	fallback Strategy
}

func NewAdaptive(p llm.Provider, fallback Strategy) *Adaptive {
	return &Adaptive{provider: p, fallback: fallback}
}

func (s *Adaptive) Name() string { return "AdaptiveRAG" }

func (s *Adaptive) Run(ctx context.Context, query string) (*Result, error) {
	if s == nil || s.provider == nil || s.fallback == nil {
		return nil, errors.New("strategy: adaptive: not configured")
	}

	route, err := s.route(ctx, query)
	if err != nil {
		return nil, err
	}

	if route == "direct" {
		resp, err := s.provider.Complete(ctx, &llm.Request{
			System:   directSystem,
			Messages: userMessage(query),
		})
		if err != nil {
			return nil, fmt.Errorf("strategy: adaptive: direct: %w", err)
		}
		return &Result{
			Generation: strings.TrimSpace(resp.Text),
			Route:      "direct",
		}, nil
	}

	res, err := s.fallback.Run(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("strategy: adaptive: delegate: %w", err)
	}
	res.Route = "retrieve"
	return res, nil
}

func (s *Adaptive) route(ctx context.Context, query string) (string, error) {
	resp, err := s.provider.Complete(ctx, &llm.Request{
		System:   routeSystem,
		Messages: userMessage(routePrompt(query)),
	})
	if err != nil {
		return "", fmt.Errorf("strategy: adaptive: route: %w", err)
	}

	var decision struct {
		Route string `json:"route"`
	}
	// Default to retrieval when the router output is unusable.
	if err := llm.ParseJSON(resp.Text, &decision); err != nil {
		return "retrieve", nil
	}
	if strings.EqualFold(strings.TrimSpace(decision.Route), "direct") {
		return "direct", nil
	}
	return "retrieve", nil
}
