package llm

import (
	"context"
	"fmt"

	"seedsplit/internal/config"
)

// NewClientFromConfig builds a client for the configured provider.
// Returns an error when no API key is configured; callers that want
// deterministic-only operation should not call this at all.
func NewClientFromConfig(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured; set llm.api_key or OPENAI_API_KEY / GEMINI_API_KEY")
	}

	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: 0.1,
			Timeout:     cfg.TimeoutDuration(),
		}), nil
	case "gemini":
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: 0.1,
		})
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
