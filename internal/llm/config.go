package llm

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lbliii/milodocs/internal/config"
)

const (
	defaultOpenAIChatModel = "gpt-4"
	defaultAnthropicModel  = "claude-sonnet-4-20250514"
)

// loadConfig builds the LLM configuration from the service config plus the
// optional GENERATOR_* and EMBEDDER_* environment variables
func loadConfig(base *config.Config) (*Config, error) {
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderOpenAI // default
	}

	generatorAPIKey := getAPIKeyForProvider(generatorProvider, base)
	if generatorAPIKey == "" {
		return nil, fmt.Errorf("no API key configured for generator provider %s", generatorProvider)
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		generatorModel = defaultOpenAIChatModel
		if generatorProvider == ProviderAnthropic {
			generatorModel = defaultAnthropicModel
		}
	}

	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOpenAI // default
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = defaultOpenAIModel
	}

	generatorMaxTokens := 1024 // default
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(0.7) // default
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      generatorAPIKey,
		GeneratorModel:       generatorModel,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
		EmbedderProvider:     embedderProvider,
		EmbedderAPIKey:       getAPIKeyForProvider(embedderProvider, base),
		EmbedderModel:        embedderModel,
	}, nil
}
