package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prathamdarmwal/ragscope/internal/config"
)

// NewProviderFromConfig builds the generation provider the strategies share.
func NewProviderFromConfig(cfg *config.Config) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	name := strings.ToLower(strings.TrimSpace(cfg.LLM.DefaultProvider))
	if name == "" {
		name = "claude"
	}

	pcfg := cfg.LLM.Providers[name]
	switch name {
	case "claude", "anthropic":
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	case "openai":
		return NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", name)
	}
}
