package main

import (
	"context"
	"fmt"

	"github.com/lbliii/milodocs/internal/chunker"
	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/docindex"
	"github.com/lbliii/milodocs/internal/llm"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	embeddingBatchSize   = 100
	embeddingConcurrency = 4
)

// the parts of storage.Client the indexer writes through
type chunkStore interface {
	EnsureSchema(ctx context.Context, dimension int) error
	ReplaceNamespace(ctx context.Context, namespace string, chunks []chunker.Chunk, embeddings [][]float32) (int64, error)
	InsertChunksBatch(ctx context.Context, namespace string, chunks []chunker.Chunk, embeddings [][]float32) error
	ChunkCount(ctx context.Context, namespace string) (int, error)
}

// loads, chunks, embeds and stores the site index
func IndexSite(ctx context.Context, cfg *config.Config, store *storage.Client, flags config.IndexFlags) error {
	logger.Info("starting site indexing", "path", flags.Path, "namespace", flags.Namespace, "keep", flags.Keep)

	docs, err := docindex.Load(flags.Path)
	if err != nil {
		return err
	}

	chunks := chunker.ChunkDocuments(docs, chunker.DefaultOptions())
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks generated from %s", flags.Path)
	}

	logger.Info("generated chunks", "documents", len(docs), "chunks", len(chunks))

	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
	})

	count, err := indexChunks(ctx, store, embedder, flags, chunks)
	if err != nil {
		return err
	}

	logger.Info("successfully indexed site",
		"documents", len(docs),
		"chunks_inserted", len(chunks),
		"total_chunks", count,
	)

	return nil
}

// embeds every chunk before touching stored rows, so a failed run leaves
// the previous index of the namespace in place
func indexChunks(ctx context.Context, store chunkStore, embedder llm.Embedder, flags config.IndexFlags, chunks []chunker.Chunk) (int, error) {
	if err := store.EnsureSchema(ctx, llm.EmbeddingDimension); err != nil {
		return 0, err
	}

	embeddings, err := embedChunks(ctx, embedder, chunks, embeddingBatchSize)
	if err != nil {
		return 0, err
	}

	logger.Info("generated embeddings", "count", len(embeddings))

	if flags.Keep {
		if err := store.InsertChunksBatch(ctx, flags.Namespace, chunks, embeddings); err != nil {
			return 0, fmt.Errorf("failed to insert chunks: %w", err)
		}
	} else {
		deleted, err := store.ReplaceNamespace(ctx, flags.Namespace, chunks, embeddings)
		if err != nil {
			return 0, fmt.Errorf("failed to replace namespace: %w", err)
		}

		logger.Info("replaced namespace", "namespace", flags.Namespace, "deleted", deleted)
	}

	// verify insertion
	count, err := store.ChunkCount(ctx, flags.Namespace)
	if err != nil {
		return 0, fmt.Errorf("failed to verify chunk count: %w", err)
	}

	return count, nil
}

// embeds chunk contents in batches, at most embeddingConcurrency at a time.
// the result is aligned with chunks.
func embedChunks(ctx context.Context, embedder llm.Embedder, chunks []chunker.Chunk, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = embeddingBatchSize
	}

	embeddings := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embeddingConcurrency)

	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))

		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, chunk := range chunks[start:end] {
				texts = append(texts, chunk.Content)
			}

			vectors, err := embedder.GenerateEmbeddings(gctx, texts)
			if err != nil {
				return fmt.Errorf("failed to embed chunks %d-%d: %w", start, end-1, err)
			}

			if len(vectors) != len(texts) {
				return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
			}

			copy(embeddings[start:end], vectors)

			logger.Debug("embedded batch", "start", start, "end", end)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return embeddings, nil
}
