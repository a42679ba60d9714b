package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/retriever"
)

func New(ret Retriever, generator llm.TextGenerator) *Service {
	return &Service{
		retriever: ret,
		generator: generator,
	}
}

// answers a question using the documentation chunks closest to it
func (s *Service) Ask(ctx context.Context, req AskRequest) (string, error) {
	if strings.TrimSpace(req.Query) == "" {
		return "", fmt.Errorf("query cannot be empty")
	}

	docs, err := s.retriever.Search(ctx, req.Query, retriever.Filter{ProductPath: req.ProductFilter}, 0)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve docs: %w", err)
	}

	prompt := buildAskPrompt(retriever.JoinContents(docs), req.Query)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.FromContext(ctx).Info("question answered",
		"docs_retrieved", len(docs),
		"product_filter", req.ProductFilter,
	)

	return answer, nil
}

// summarizes an article
func (s *Service) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := s.generate(ctx, buildSummarizePrompt(text))
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return summary, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.generator.GenerateText(ctx, llm.TextGenerationRequest{
		Messages: []llm.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	logger.Debug("generation usage",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return resp.Text, nil
}
