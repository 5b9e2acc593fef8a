// Package main provides the docgen command.
package main

import (
	"os"

	"github.com/example/docgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
