package storage

import "fmt"

const (
	clearNamespaceQuery = `
		DELETE FROM doc_chunks WHERE namespace = $1
	`

	insertChunkQuery = `
		INSERT INTO doc_chunks (
			namespace, title, rel_uri, description, product_path,
			chunk_index, content, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	countChunksQuery = `
		SELECT COUNT(*) FROM doc_chunks WHERE namespace = $1
	`
)

func schemaStatements(dimension int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS doc_chunks (
			id BIGSERIAL PRIMARY KEY,
			namespace TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			rel_uri TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			product_path TEXT NOT NULL DEFAULT '',
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, dimension),
		`CREATE INDEX IF NOT EXISTS doc_chunks_namespace_product_idx
			ON doc_chunks (namespace, product_path)`,
	}
}
