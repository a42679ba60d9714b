package assistant

import (
	"context"

	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/retriever"
)

// interface for documentation retrieval
type Retriever interface {
	Search(ctx context.Context, query string, filter retriever.Filter, k int) ([]retriever.Document, error)
}

// answers questions about the docs and summarizes articles
type Service struct {
	retriever Retriever
	generator llm.TextGenerator
}

type AskRequest struct {
	Query         string
	ProductFilter string // optional product_path the context is restricted to
}
