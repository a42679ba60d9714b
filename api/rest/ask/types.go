package ask

import (
	"context"

	"github.com/lbliii/milodocs/internal/assistant"
)

const defaultQuery = "What is Hugo?"

// answers documentation questions
type Asker interface {
	Ask(ctx context.Context, req assistant.AskRequest) (string, error)
}

// request payload for a question
type Request struct {
	Query         string `json:"query" form:"query"`
	ProductFilter string `json:"productFilter" form:"productFilter"`
}

type Response struct {
	Answer string `json:"answer"`
}
