package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Compare   CompareConfig   `yaml:"compare"`
	Storage   StorageConfig   `yaml:"storage"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// RetrievalConfig describes the shared vector index every
// retrieval-backed strategy searches against.
type RetrievalConfig struct {
	Host   string `yaml:"host,omitempty"`
	Scheme string `yaml:"scheme,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
	Class  string `yaml:"class,omitempty"`
	TopK   int    `yaml:"top_k,omitempty"`
}

type DatasetConfig struct {
	Path string `yaml:"path,omitempty"`
}

type CompareConfig struct {
	// Pause is a cosmetic pacing delay inserted after each strategy
	// finishes during a dispatch.
	Pause   time.Duration `yaml:"pause,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// Default returns a config usable without a config file on disk.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "claude"
	}
	if strings.TrimSpace(cfg.Retrieval.Host) == "" {
		cfg.Retrieval.Host = "localhost:8080"
	}
	if strings.TrimSpace(cfg.Retrieval.Scheme) == "" {
		cfg.Retrieval.Scheme = "http"
	}
	if strings.TrimSpace(cfg.Retrieval.Class) == "" {
		cfg.Retrieval.Class = "MLKnowledge"
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Compare.Pause <= 0 {
		cfg.Compare.Pause = 300 * time.Millisecond
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.LLM.Providers["claude"]
		p.APIKey = v
		cfg.LLM.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}

	if v := strings.TrimSpace(os.Getenv("WEAVIATE_HOST")); v != "" {
		cfg.Retrieval.Host = v
	}
	if v := strings.TrimSpace(os.Getenv("WEAVIATE_SCHEME")); v != "" {
		cfg.Retrieval.Scheme = v
	}
	if v := strings.TrimSpace(os.Getenv("WEAVIATE_API_KEY")); v != "" {
		cfg.Retrieval.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("RAGSCOPE_DATASET_PATH")); v != "" {
		cfg.Dataset.Path = v
	}
}
