// Package main is the entry point for the containerlab CLI binary.
package main

import (
	"os"

	"github.com/containerlab/containerlab/cmd/containerlab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
