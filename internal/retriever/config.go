package retriever

import (
	"os"
	"strconv"

	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/logger"
)

const defaultTopK = 4

// loadRetrieverConfig loads configuration from environment variables
func loadRetrieverConfig() *RetrieverConfig {
	cfg := &RetrieverConfig{
		Namespace: config.DefaultNamespace,
		TopK:      defaultTopK,
	}

	if ns := os.Getenv("RETRIEVAL_NAMESPACE"); ns != "" {
		cfg.Namespace = ns
	}

	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		val, err := strconv.Atoi(topKStr)
		if err != nil || val <= 0 {
			logger.Warn("ignoring invalid RETRIEVAL_TOP_K", "value", topKStr)
		} else {
			cfg.TopK = val
		}
	}

	return cfg
}
