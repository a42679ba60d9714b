package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultRateLimit = "30-M"
	defaultPort      = "8080"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	databaseURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")
	rateLimit := os.Getenv("RATE_LIMIT")
	environment := os.Getenv("ENVIRONMENT")

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// anthropic is only needed when it generates the answers
	if strings.EqualFold(os.Getenv("GENERATOR_PROVIDER"), "anthropic") && anthropicKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required when GENERATOR_PROVIDER=anthropic")
	}

	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		OpenAIKey:    openaiKey,
		AnthropicKey: anthropicKey,
		DatabaseURL:  databaseURL,
		RedisURL:     redisURL,
		RateLimit:    rateLimit,
		Environment:  environment,
	}, nil
}

// returns the HTTP port, defaulting to 8080
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}

	return defaultPort
}
