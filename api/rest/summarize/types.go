package summarize

import "context"

const defaultContext = "There is no article to summarize."

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// request payload for a summary
type Request struct {
	Context string `json:"context" form:"context"`
}

type Response struct {
	Summarization string `json:"summarization"`
}
