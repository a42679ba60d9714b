package retriever

const (
	searchQuery = `
		SELECT title, rel_uri, description, product_path, content,
			embedding <#> $1 AS distance
		FROM doc_chunks
		WHERE namespace = $2
		ORDER BY embedding <#> $1
		LIMIT $3
	`

	searchByProductQuery = `
		SELECT title, rel_uri, description, product_path, content,
			embedding <#> $1 AS distance
		FROM doc_chunks
		WHERE namespace = $2 AND product_path = $4
		ORDER BY embedding <#> $1
		LIMIT $3
	`
)
