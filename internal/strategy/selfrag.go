package strategy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/llm"
	"github.com/prathamdarmwal/ragscope/internal/retriever"
)

// Self is self-reflective RAG: generate from retrieved context, critique the
// draft against that context, and revise once when the critique rejects it.
type Self struct {
	provider  llm.Provider
	retriever retriever.Retriever
	topK      int
}

func NewSelf(p llm.Provider, r retriever.Retriever, topK int) *Self {
	if topK <= 0 {
		topK = 4
	}
	return &Self{provider: p, retriever: r, topK: topK}
}

func (s *Self) Name() string { return "SelfRAG" }

func (s *Self) Run(ctx context.Context, query string) (*Result, error) {
	if s == nil || s.provider == nil || s.retriever == nil {
		return nil, errors.New("strategy: selfrag: not configured")
	}

	docs, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, fmt.Errorf("strategy: selfrag: retrieve: %w", err)
	}

	draft, err := s.provider.Complete(ctx, &llm.Request{
		System:   answerSystem,
		Messages: userMessage(answerPrompt(query, docs)),
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: selfrag: generate: %w", err)
	}
	generation := strings.TrimSpace(draft.Text)

	out := &Result{
		Generation: generation,
		Documents:  docs,
	}

	critique, err := s.provider.Complete(ctx, &llm.Request{
		System:   critiqueSystem,
		Messages: userMessage(critiquePrompt(query, docs, generation)),
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: selfrag: critique: %w", err)
	}

	var verdict struct {
		Supported bool   `json:"supported"`
		Critique  string `json:"critique"`
	}
	// An unparseable critique leaves the draft as the answer.
	if err := llm.ParseJSON(critique.Text, &verdict); err != nil {
		return out, nil
	}
	if verdict.Supported {
		return out, nil
	}

	out.Critique = strings.TrimSpace(verdict.Critique)
	revised, err := s.provider.Complete(ctx, &llm.Request{
		System:   answerSystem,
		Messages: userMessage(revisePrompt(query, docs, out.Critique)),
	})
	if err != nil {
		return nil, fmt.Errorf("strategy: selfrag: revise: %w", err)
	}

	out.Generation = strings.TrimSpace(revised.Text)
	return out, nil
}
