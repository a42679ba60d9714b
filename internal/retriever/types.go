package retriever

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lbliii/milodocs/internal/llm"
)

type Client struct {
	pool      *pgxpool.Pool
	embedder  llm.Embedder
	namespace string
	topK      int
}

type RetrieverConfig struct {
	Namespace string
	TopK      int
}

// narrows a search to part of the site
type Filter struct {
	ProductPath string // exact match, empty for no filter
}

// a stored chunk returned by a search
type Document struct {
	Title       string
	RelURI      string
	Description string
	ProductPath string
	Content     string
	Distance    float64
}
