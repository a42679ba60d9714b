package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lbliii/milodocs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedder_GenerateEmbeddings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embeddingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"first", "second"}, req.Input)

		// out of order on purpose
		_, _ = w.Write([]byte(`{"data": [
			{"index": 1, "embedding": [0.3, 0.4]},
			{"index": 0, "embedding": [0.1, 0.2]}
		]}`))
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL})

	got, err := embedder.GenerateEmbeddings(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, got)
}

func TestOpenAIEmbedder_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer server.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "sk-bad", BaseURL: server.URL})

	_, err := embedder.GenerateEmbedding(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API request failed with status 401")

	_, err = embedder.GenerateEmbeddings(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpenAIGenerator_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "user", req.Messages[1].Role)
		}
		assert.Equal(t, 256, req.MaxTokens)

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  Hugo is a static site generator. "}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7}
		}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL, MaxTokens: 256})
	assert.Equal(t, "gpt-4", gen.Model())

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "be brief",
		Messages:     []Message{{Role: "user", Content: "What is Hugo?"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hugo is a static site generator.", resp.Text)
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 7}, resp.Usage)
}

func TestAnthropicGenerator_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "be brief", req.System)
		assert.Equal(t, defaultMaxTokens, req.MaxTokens)

		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "An answer."}],
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}))
	defer server.Close()

	gen := NewAnthropicGenerator(AnthropicConfig{APIKey: "ak-test", Model: "claude", URL: server.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "be brief",
		Messages:     []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "An answer.", resp.Text)
}

func TestLoadConfig(t *testing.T) {
	base := &config.Config{OpenAIKey: "sk-test", AnthropicKey: "ak-test"}

	tests := []struct {
		name      string
		provider  string
		model     string
		wantModel string
		wantKey   string
	}{
		{name: "defaults to openai gpt-4", wantModel: "gpt-4", wantKey: "sk-test"},
		{name: "anthropic default model", provider: "anthropic", wantModel: defaultAnthropicModel, wantKey: "ak-test"},
		{name: "explicit model", provider: "openai", model: "gpt-4o", wantModel: "gpt-4o", wantKey: "sk-test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GENERATOR_PROVIDER", tt.provider)
			t.Setenv("GENERATOR_MODEL", tt.model)

			cfg, err := loadConfig(base)
			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, cfg.GeneratorModel)
			assert.Equal(t, tt.wantKey, cfg.GeneratorAPIKey)
			assert.Equal(t, "sk-test", cfg.EmbedderAPIKey)
		})
	}

	t.Run("missing key", func(t *testing.T) {
		t.Setenv("GENERATOR_PROVIDER", "anthropic")
		_, err := loadConfig(&config.Config{OpenAIKey: "sk-test"})
		assert.Error(t, err)
	})
}

func TestNewLLMWithConfig(t *testing.T) {
	_, err := NewLLMWithConfig(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewLLMWithConfig(context.Background(), &Config{GeneratorProvider: "mistral", EmbedderProvider: ProviderOpenAI})
	assert.Error(t, err)

	l, err := NewLLMWithConfig(context.Background(), &Config{
		GeneratorProvider: ProviderAnthropic,
		GeneratorAPIKey:   "ak-test",
		EmbedderProvider:  ProviderOpenAI,
		EmbedderAPIKey:    "sk-test",
	})
	require.NoError(t, err)
	assert.NotNil(t, l)
}
