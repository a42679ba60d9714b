package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  index     - chunk, embed and store the site's index.json")
		fmt.Println("\nOptions:")
		fmt.Println("  -path <path>       - path to index.json (default ../../public/index.json)")
		fmt.Println("  -namespace <name>  - namespace the chunks are stored under (default milodocs)")
		fmt.Println("  -keep              - append instead of recreating the namespace")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	// connect to database
	ctx := context.Background()
	store, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.FatalErr(err, "failed to connect to database")
	}

	defer store.Close()

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "index":
		flags := config.ParseIndexFlags(os.Args[2:])
		if err := IndexSite(ctx, cfg, store, flags); err != nil {
			store.Close()
			logger.FatalErr(err, "failed to index site")
		}

	default:
		store.Close()
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
