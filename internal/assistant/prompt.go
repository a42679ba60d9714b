package assistant

import "strings"

const (
	askTemplate = "You are a technical writer and Hugo Site Generator expert named Milo. " +
		"You help people answer questions about the Milo Docs theme. " +
		"Answer the question based only on the following context:\n{context}\n\nQuestion: {question}\n"

	summarizeTemplate = "Summarize this article:\n{context}\n"
)

// fills {name} placeholders in a single pass so values containing braces
// are left alone
func render(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

func buildAskPrompt(context, question string) string {
	return render(askTemplate, map[string]string{
		"context":  context,
		"question": question,
	})
}

func buildSummarizePrompt(article string) string {
	return render(summarizeTemplate, map[string]string{"context": article})
}
