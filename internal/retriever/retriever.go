package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/pgvector/pgvector-go"
)

// creates a retriever over pool with configuration from environment
func NewClient(pool *pgxpool.Pool, embedder llm.Embedder) *Client {
	return NewClientWithConfig(pool, embedder, loadRetrieverConfig())
}

// creates a retriever with explicit configuration
func NewClientWithConfig(pool *pgxpool.Pool, embedder llm.Embedder, cfg *RetrieverConfig) *Client {
	if cfg == nil {
		cfg = loadRetrieverConfig()
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Client{
		pool:      pool,
		embedder:  embedder,
		namespace: cfg.Namespace,
		topK:      topK,
	}
}

// returns the configured default result count
func (c *Client) TopK() int {
	return c.topK
}

// Search embeds query and returns the k closest chunks by inner product.
// k <= 0 uses the configured default.
func (c *Client) Search(ctx context.Context, query string, filter Filter, k int) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if k <= 0 {
		k = c.topK
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	sql, args := buildSearch(pgvector.NewVector(embedding), c.namespace, filter, k)

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []Document

	for rows.Next() {
		var doc Document
		err := rows.Scan(
			&doc.Title,
			&doc.RelURI,
			&doc.Description,
			&doc.ProductPath,
			&doc.Content,
			&doc.Distance,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	logger.Debug("retrieved documents",
		"count", len(results),
		"k", k,
		"product_path", filter.ProductPath,
	)

	return results, nil
}

func buildSearch(embedding pgvector.Vector, namespace string, filter Filter, k int) (string, []any) {
	if filter.ProductPath == "" {
		return searchQuery, []any{embedding, namespace, k}
	}

	return searchByProductQuery, []any{embedding, namespace, k, filter.ProductPath}
}

// concatenates page contents separated by a blank line
func JoinContents(docs []Document) string {
	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = doc.Content
	}

	return strings.Join(parts, "\n\n")
}
