package errors

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorInfo struct {
	category  string
	sanitized string
}

const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryUpstream   = "upstream"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

// llm and embedder clients report non-2xx replies this way
var providerStatus = regexp.MustCompile(`api request failed with status (\d{3})`)

// message fragments produced by the ask pipeline and its dependencies,
// checked in order after the typed checks miss
var messageRules = []struct {
	category string
	public   string
	needles  []string
}{
	{CategoryUpstream, "language model rate limit reached", []string{"rate limiter error", "rate limit"}},
	{CategoryUpstream, "language model returned no usable output", []string{
		"no embeddings returned", "no choices in response", "no content in response", "embeddings, got",
	}},
	{CategoryTimeout, "request timed out", []string{"timeout", "deadline exceeded"}},
	{CategoryNotFound, "no matching documentation", []string{"no rows in result set", "namespace not found"}},
	{CategoryDatabase, "documentation index unavailable", []string{"pgvector", "pgx", "postgres", "sqlstate"}},
	{CategoryNetwork, "could not reach a backing service", []string{
		"connection refused", "connect:", "dial tcp", "no such host", "failed to send request",
	}},
	{CategoryValidation, "request validation failed", []string{"binding", "validation", "invalid", "required"}},
}

func classifyError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	category, public := categorize(err)
	if os.Getenv("ENVIRONMENT") != "production" {
		return ErrorInfo{category, err.Error()}
	}
	return ErrorInfo{category, public}
}

// picks a category and the message safe to show outside development
func categorize(err error) (string, string) {
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError

	switch {
	case errors.As(err, &pgErr):
		return CategoryDatabase, "documentation index unavailable"
	case errors.As(err, &connErr):
		return CategoryNetwork, "could not reach a backing service"
	case errors.Is(err, pgx.ErrNoRows):
		return CategoryNotFound, "no matching documentation"
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout, "request timed out"
	case errors.Is(err, context.Canceled):
		return CategoryTimeout, "request canceled"
	}

	msg := strings.ToLower(err.Error())

	if m := providerStatus.FindStringSubmatch(msg); m != nil {
		status, _ := strconv.Atoi(m[1])
		switch {
		case status == 429:
			return CategoryUpstream, "language model rate limit reached"
		case status >= 500:
			return CategoryUpstream, "language model provider unavailable"
		default:
			return CategoryUpstream, "language model provider rejected the request"
		}
	}

	for _, rule := range messageRules {
		for _, needle := range rule.needles {
			if strings.Contains(msg, needle) {
				return rule.category, rule.public
			}
		}
	}

	return CategoryUnknown, "an error occurred"
}
