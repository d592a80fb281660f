package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/llm"
	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

// Basic is plain retrieve-then-generate: fetch topK documents and answer
// from them in a single completion.
type Basic struct {
	provider  llm.Provider
	retriever retriever.Retriever
	topK      int
}

func NewBasic(p llm.Provider, r retriever.Retriever, topK int) *Basic {
	if topK <= 0 {
		topK = 4
	}
	return &Basic{provider: p, retriever: r, topK: topK}
}

func (s *Basic) Name() string { return "BasicRAG" }

func (s *Basic) Run(ctx context.Context, query string) (*Result, error) {
	if s == nil || s.provider == nil || s.retriever == nil {
		return nil, errors.New("strategy: basic: not configured")
	}

	docs, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("strategy: basic: retrieve: %w", err)
	}

	resp, err := s.provider.Complete(ctx, &llm.Request{
		System:   answerSystem,
		Messages: userMessage(answerPrompt(query, docs)),
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: basic: generate: %w", err)
	}

	return &Result{
		Generation: strings.TrimSpace(resp.Text),
		Documents:  docs,
	}, nil
}
