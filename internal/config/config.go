// Package config loads seedsplit configuration from YAML with environment
// variable overrides for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all seedsplit configuration.
type Config struct {
	// LLM resolver configuration. An empty APIKey disables the
	// probabilistic resolver and the pipeline runs deterministic-only.
	LLM LLMConfig `yaml:"llm"`

	// Column names recognized in the input dataset.
	Columns ColumnsConfig `yaml:"columns"`

	// Species reference list configuration.
	Reference ReferenceConfig `yaml:"reference"`
}

// LLMConfig configures the probabilistic resolver backend.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, gemini
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

// ColumnsConfig names the splittable columns in the input dataset.
type ColumnsConfig struct {
	Variety string `yaml:"variety"`
	Species string `yaml:"species"`
}

// ReferenceConfig configures the species reference list.
type ReferenceConfig struct {
	Path   string `yaml:"path"`
	Column string `yaml:"column"`
	// Number of reference names included in the species prompt for grounding.
	PromptSample int `yaml:"prompt_sample"`
}

// DefaultConfig returns the default configuration. Column names match the
// genebank export format this tool was built for.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			BaseURL:   "https://api.openai.com/v1",
			Timeout:   "60s",
			MaxTokens: 500,
		},
		Columns: ColumnsConfig{
			Variety: "Variety Name species",
			Species: "Latin Name species",
		},
		Reference: ReferenceConfig{
			Column:       "Latin Name species",
			PromptSample: 20,
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables fill in missing credentials.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides fills the API key (and provider, when the key implies
// one) from environment variables. An explicit config file key wins; among
// env vars GEMINI_API_KEY takes precedence over OPENAI_API_KEY.
func (c *Config) applyEnvOverrides() {
	if c.LLM.APIKey != "" {
		return
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = "gemini"
		return
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		if c.LLM.Provider == "" {
			c.LLM.Provider = "openai"
		}
	}
}

// TimeoutDuration parses the LLM timeout string, falling back to 60s.
func (c *LLMConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}
