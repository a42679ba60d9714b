package main

import (
	"context"
	"fmt"

	"github.com/lbliii/milodocs/internal/assistant"
	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/retriever"
	"github.com/lbliii/milodocs/internal/storage"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config, store *storage.Client) (*Services, error) {
	llmClient, err := llm.NewLLM(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retrieverClient := retriever.NewClient(store.Pool(), llmClient)
	assistantService := assistant.New(retrieverClient, llmClient)

	return &Services{
		Assistant: assistantService,
		LLM:       llmClient,
		Retriever: retrieverClient,
	}, nil
}
