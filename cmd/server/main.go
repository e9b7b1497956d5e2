// Package main is the entry point for the entryhub server and CLI.
package main

import (
	"os"

	"github.com/CageChen/entryhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
