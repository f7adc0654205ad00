package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SummarizeConfig holds runtime configuration for summarize runs. Values come
// from defaults, then an optional YAML file, then CLI flags (flags win).
type SummarizeConfig struct {
	DelaySeconds        float64  `yaml:"delay_seconds"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
	APITimeoutSeconds   int      `yaml:"api_timeout_seconds"`
	MaxSentences        int      `yaml:"max_sentences"`
	PreviewChars        int      `yaml:"preview_chars"`
	Stopwords           []string `yaml:"stopwords,omitempty"`
	UseReadability      bool     `yaml:"readability"`
}

// DefaultSummarizeConfig returns the built-in defaults: 1s between requests,
// 10s fetch timeout, 30s API timeout, 3-sentence summaries, 800-char preview.
func DefaultSummarizeConfig() SummarizeConfig {
	return SummarizeConfig{
		DelaySeconds:        1.0,
		FetchTimeoutSeconds: 10,
		APITimeoutSeconds:   30,
		MaxSentences:        3,
		PreviewChars:        800,
	}
}

// LoadSummarizeConfig reads a YAML config file over the defaults. Unset keys
// keep their default values.
func LoadSummarizeConfig(path string) (SummarizeConfig, error) {
	cfg := DefaultSummarizeConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
