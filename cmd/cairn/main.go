// Package main is the entry point for the cairn CLI tool.
package main

import (
	"os"

	"github.com/cairnlog/cairn/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
