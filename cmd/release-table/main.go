package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/products"
	"github.com/lbliii/milodocs/internal/releases"
)

func main() {
	flags := config.ParseSiteFlags("release-table", os.Args[1:])

	if len(flags.Args) != 2 {
		fmt.Println("Usage: release-table [-root <site>] <product> <version>")
		os.Exit(1)
	}

	product := flags.Args[0]

	version, err := releases.Normalize(flags.Args[1])
	if err != nil {
		fmt.Println("Version must be in the format #.#.X after normalization.")
		os.Exit(1)
	}

	if !products.Valid(product) {
		fmt.Printf("Product must be one of: %s\n", products.List())
		os.Exit(1)
	}

	path := releases.TablePath(flags.Root, product)
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("File not found: %s\n", path)
		os.Exit(1)
	}

	if err := releases.AddRelease(path, version); err != nil {
		if errors.Is(err, releases.ErrAlreadyListed) {
			fmt.Printf("%s is already on the support table.\n", version)
			return
		}

		logger.FatalErr(err, "failed to update release table", "path", path, "version", version)
	}

	fmt.Printf("Updated %s with version %s\n", path, version)
}
