package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "missing openai key",
			env:     map[string]string{"DATABASE_URL": "postgres://localhost/docs"},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "missing database url",
			env:     map[string]string{"OPENAI_API_KEY": "sk-test"},
			wantErr: "DATABASE_URL",
		},
		{
			name: "anthropic generator needs its key",
			env: map[string]string{
				"OPENAI_API_KEY":     "sk-test",
				"DATABASE_URL":       "postgres://localhost/docs",
				"GENERATOR_PROVIDER": "anthropic",
			},
			wantErr: "ANTHROPIC_API_KEY",
		},
		{
			name: "defaults",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"DATABASE_URL":   "postgres://localhost/docs",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sk-test", cfg.OpenAIKey)
				assert.Equal(t, "30-M", cfg.RateLimit)
				assert.Equal(t, "development", cfg.Environment)
				assert.Empty(t, cfg.RedisURL)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"OPENAI_API_KEY": "sk-test",
				"DATABASE_URL":   "postgres://localhost/docs",
				"REDIS_URL":      "redis://localhost:6379/0",
				"RATE_LIMIT":     "5-S",
				"ENVIRONMENT":    "production",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
				assert.Equal(t, "5-S", cfg.RateLimit)
				assert.Equal(t, "production", cfg.Environment)
			},
		},
	}

	keys := []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DATABASE_URL", "REDIS_URL", "RATE_LIMIT", "ENVIRONMENT", "GENERATOR_PROVIDER"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, tt.env[k])
			}

			cfg, err := LoadEnvironmentVariables()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestPort(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, "8080", Port())

	t.Setenv("PORT", "9000")
	assert.Equal(t, "9000", Port())
}

func TestParseIndexFlags(t *testing.T) {
	flags := ParseIndexFlags(nil)
	assert.Equal(t, IndexFlags{Path: DefaultIndexPath, Namespace: "milodocs"}, flags)

	flags = ParseIndexFlags([]string{"-path", "public/index.json", "-keep"})
	assert.Equal(t, "public/index.json", flags.Path)
	assert.True(t, flags.Keep)
}

func TestParseSiteFlags(t *testing.T) {
	flags := ParseSiteFlags("release-table", []string{"-root", "site", "genai", "1.2.3"})
	assert.Equal(t, "site", flags.Root)
	assert.Equal(t, []string{"genai", "1.2.3"}, flags.Args)

	flags = ParseSiteFlags("release-table", []string{"genai"})
	assert.Equal(t, ".", flags.Root)
	assert.Equal(t, []string{"genai"}, flags.Args)
}
