// Package main provides the entry point for the catsearch CLI.
package main

import (
	"os"

	"github.com/tripline/catsearch/cmd/catsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
