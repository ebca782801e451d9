package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/vox-go/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{
		Verbose:         isVerbose(),
		CatalogOverride: catalogOverride(),
	}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("VOX_DEBUG"), "1") || strings.EqualFold(os.Getenv("VOX_DEBUG"), "true")
}

// catalogOverride reads VOX_CATALOG, a path-list of command-definition
// files that replaces the configured catalog sources.
func catalogOverride() []string {
	raw := os.Getenv("VOX_CATALOG")
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(raw, string(os.PathListSeparator)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
