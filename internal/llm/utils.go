package llm

import (
	"github.com/lbliii/milodocs/internal/config"
)

// returns the appropriate API key for the given provider
func getAPIKeyForProvider(provider Provider, baseConfig *config.Config) string {
	switch provider {
	case ProviderOpenAI:
		return baseConfig.OpenAIKey
	case ProviderAnthropic:
		return baseConfig.AnthropicKey
	default:
		return ""
	}
}
