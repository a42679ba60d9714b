package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lbliii/milodocs/internal/chunker"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/pgvector/pgvector-go"
)

// chunks sent to the server per pgx batch
const insertBatchSize = 500

// inserts chunks with their embeddings in a single transaction
func (c *Client) InsertChunksBatch(ctx context.Context, namespace string, chunks []chunker.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	if len(chunks) == 0 {
		return nil
	}

	return c.inTx(ctx, func(tx pgx.Tx) error {
		return insertChunks(ctx, tx, namespace, chunks, embeddings)
	})
}

// swaps the contents of namespace for chunks in one transaction, so readers
// see either the old index or the new one. returns how many rows were removed.
func (c *Client) ReplaceNamespace(ctx context.Context, namespace string, chunks []chunker.Chunk, embeddings [][]float32) (int64, error) {
	if len(chunks) != len(embeddings) {
		return 0, fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	var deleted int64

	err := c.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, clearNamespaceQuery, namespace)
		if err != nil {
			return fmt.Errorf("failed to clear namespace %q: %w", namespace, err)
		}

		deleted = tag.RowsAffected()

		return insertChunks(ctx, tx, namespace, chunks, embeddings)
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (c *Client) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertChunks(ctx context.Context, tx pgx.Tx, namespace string, chunks []chunker.Chunk, embeddings [][]float32) error {
	for start := 0; start < len(chunks); start += insertBatchSize {
		end := min(start+insertBatchSize, len(chunks))

		batch := &pgx.Batch{}

		for i := start; i < end; i++ {
			chunk := chunks[i]
			batch.Queue(insertChunkQuery,
				namespace,
				chunk.Title,
				chunk.RelURI,
				chunk.Description,
				chunk.ProductPath,
				chunk.Index,
				chunk.Content,
				pgvector.NewVector(embeddings[i]),
			)
		}

		br := tx.SendBatch(ctx, batch)

		for i := start; i < end; i++ {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to insert chunk %d (%s): %w", i, chunks[i].RelURI, err)
			}
		}

		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}
	}

	return nil
}

// returns the number of chunks stored under namespace
func (c *Client) ChunkCount(ctx context.Context, namespace string) (int, error) {
	var count int

	if err := c.pool.QueryRow(ctx, countChunksQuery, namespace).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}

	return count, nil
}
