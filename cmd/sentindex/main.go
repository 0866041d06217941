// Package main provides the entry point for the sentindex CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/sentindex/cmd/sentindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
