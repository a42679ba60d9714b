package main

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/lbliii/milodocs/internal/chunker"
	"github.com/lbliii/milodocs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// returns the chunk number as the single vector component
type fakeEmbedder struct {
	mu      sync.Mutex
	batches int
	failOn  int // 1-based batch number, 0 never fails
	short   bool
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	out, err := f.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return out[0], nil
}

func (f *fakeEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.batches++
	n := f.batches
	f.mu.Unlock()

	if f.failOn != 0 && n == f.failOn {
		return nil, errors.New("api request failed with status 429")
	}

	if f.short {
		texts = texts[1:]
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, err
		}

		out[i] = []float32{float32(v)}
	}

	return out, nil
}

func numberedChunks(n int) []chunker.Chunk {
	chunks := make([]chunker.Chunk, n)
	for i := range chunks {
		chunks[i] = chunker.Chunk{Content: strconv.Itoa(i)}
	}

	return chunks
}

func TestEmbedChunks_Aligned(t *testing.T) {
	emb := &fakeEmbedder{}
	chunks := numberedChunks(23)

	embeddings, err := embedChunks(context.Background(), emb, chunks, 5)
	require.NoError(t, err)
	require.Len(t, embeddings, 23)

	for i, vec := range embeddings {
		assert.Equal(t, []float32{float32(i)}, vec)
	}

	assert.Equal(t, 5, emb.batches)
}

func TestEmbedChunks_Errors(t *testing.T) {
	t.Run("batch failure", func(t *testing.T) {
		_, err := embedChunks(context.Background(), &fakeEmbedder{failOn: 2}, numberedChunks(10), 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("short response", func(t *testing.T) {
		_, err := embedChunks(context.Background(), &fakeEmbedder{short: true}, numberedChunks(4), 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned 1 vectors for 2 chunks")
	})
}

func TestEmbedChunks_Empty(t *testing.T) {
	embeddings, err := embedChunks(context.Background(), &fakeEmbedder{}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, embeddings)
}

// records the writes the indexer makes, in order
type fakeStore struct {
	calls  []string
	stored int
}

func (f *fakeStore) EnsureSchema(context.Context, int) error {
	f.calls = append(f.calls, "ensure")
	return nil
}

func (f *fakeStore) ReplaceNamespace(_ context.Context, _ string, chunks []chunker.Chunk, _ [][]float32) (int64, error) {
	f.calls = append(f.calls, "replace")
	deleted := int64(f.stored)
	f.stored = len(chunks)

	return deleted, nil
}

func (f *fakeStore) InsertChunksBatch(_ context.Context, _ string, chunks []chunker.Chunk, _ [][]float32) error {
	f.calls = append(f.calls, "insert")
	f.stored += len(chunks)

	return nil
}

func (f *fakeStore) ChunkCount(context.Context, string) (int, error) {
	f.calls = append(f.calls, "count")
	return f.stored, nil
}

func TestIndexChunks(t *testing.T) {
	tests := []struct {
		name      string
		keep      bool
		embedder  *fakeEmbedder
		wantCalls []string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "replaces namespace",
			embedder:  &fakeEmbedder{},
			wantCalls: []string{"ensure", "replace", "count"},
			wantCount: 250,
		},
		{
			name:      "keep appends",
			keep:      true,
			embedder:  &fakeEmbedder{},
			wantCalls: []string{"ensure", "insert", "count"},
			wantCount: 400,
		},
		{
			name:      "embedding failure leaves stored chunks alone",
			embedder:  &fakeEmbedder{failOn: 2},
			wantCalls: []string{"ensure"},
			wantCount: 150,
			wantErr:   true,
		},
		{
			name:      "short embedding reply leaves stored chunks alone",
			keep:      true,
			embedder:  &fakeEmbedder{short: true},
			wantCalls: []string{"ensure"},
			wantCount: 150,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{stored: 150}
			flags := config.IndexFlags{Namespace: "milodocs", Keep: tt.keep}

			count, err := indexChunks(context.Background(), store, tt.embedder, flags, numberedChunks(250))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}

			assert.Equal(t, tt.wantCalls, store.calls)
			assert.Equal(t, tt.wantCount, store.stored)
		})
	}
}
