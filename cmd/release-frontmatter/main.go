package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lbliii/milodocs/internal/config"
	"github.com/lbliii/milodocs/internal/frontmatter"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/lbliii/milodocs/internal/products"
)

func main() {
	flags := config.ParseSiteFlags("release-frontmatter", os.Args[1:])

	if len(flags.Args) != 3 {
		fmt.Println("Usage: release-frontmatter [-root <site>] <product> <version_dir> <new_version>")
		os.Exit(1)
	}

	product, versionDir := flags.Args[0], flags.Args[1]

	version, err := frontmatter.ParseVersion(flags.Args[2])
	if err != nil {
		fmt.Println("New version must be in the format #.#.#")
		os.Exit(1)
	}

	if !products.Valid(product) {
		fmt.Printf("Product must be one of: %s\n", products.List())
		os.Exit(1)
	}

	path := frontmatter.IndexPath(flags.Root, product, versionDir)
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("File not found: %s\n", path)
		os.Exit(1)
	}

	if err := frontmatter.UpdateFile(path, version); err != nil {
		switch {
		case errors.Is(err, frontmatter.ErrNoFrontmatter):
			fmt.Println("Frontmatter not found.")
			os.Exit(1)
		case errors.Is(err, frontmatter.ErrNoCascade):
			fmt.Println("Frontmatter does not contain a 'cascade' section.")
			os.Exit(1)
		default:
			logger.FatalErr(err, "failed to update frontmatter", "path", path, "version", version.String())
		}
	}

	fmt.Printf("Updated %s with version %s\n", path, version)
}
