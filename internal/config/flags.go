package config

import (
	"flag"
)

const (
	DefaultIndexPath = "../../public/index.json"
	DefaultNamespace = "milodocs"
)

// parses CLI flags for the index subcommand
func ParseIndexFlags(args []string) IndexFlags {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	path := fs.String("path", DefaultIndexPath, "path to the site's generated index.json")
	namespace := fs.String("namespace", DefaultNamespace, "namespace the chunks are stored under")
	keep := fs.Bool("keep", false, "keep existing chunks instead of recreating the namespace")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return IndexFlags{Path: *path, Namespace: *namespace, Keep: *keep}
}

// parses the -root flag of a site maintenance tool and returns the
// remaining positional arguments
func ParseSiteFlags(name string, args []string) SiteFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	root := fs.String("root", ".", "root directory of the documentation site")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return SiteFlags{Root: *root, Args: fs.Args()}
}
