package llm

import (
	"context"
	"fmt"

	"github.com/lbliii/milodocs/internal/config"
)

// combines an Embedder and a TextGenerator into a single LLM
type CompositeLLM struct {
	Embedder
	TextGenerator
}

// creates a new LLM from the service configuration and environment overrides
func NewLLM(ctx context.Context, base *config.Config) (LLM, error) {
	cfg, err := loadConfig(base)
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(ctx, cfg)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(_ context.Context, cfg *Config) (LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var textGenerator TextGenerator

	switch cfg.GeneratorProvider {
	case ProviderOpenAI:
		textGenerator = NewOpenAIGenerator(OpenAIConfig{
			APIKey:      cfg.GeneratorAPIKey,
			Model:       cfg.GeneratorModel,
			MaxTokens:   cfg.GeneratorMaxTokens,
			Temperature: cfg.GeneratorTemperature,
		})
	case ProviderAnthropic:
		textGenerator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      cfg.GeneratorAPIKey,
			Model:       cfg.GeneratorModel,
			MaxTokens:   cfg.GeneratorMaxTokens,
			Temperature: cfg.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.GeneratorProvider)
	}

	var embedder Embedder

	switch cfg.EmbedderProvider {
	case ProviderOpenAI:
		if cfg.EmbedderAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedder")
		}

		embedder = NewOpenAIEmbedder(OpenAIConfig{
			APIKey: cfg.EmbedderAPIKey,
			Model:  cfg.EmbedderModel,
		})
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", cfg.EmbedderProvider)
	}

	return &CompositeLLM{
		Embedder:      embedder,
		TextGenerator: textGenerator,
	}, nil
}
