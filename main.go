// Package main provides the grocery-voice-ledger binary. It listens for
// short spoken grocery commands, keeps a dated ledger of items and exports
// it as CSV when the session ends.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	Version = "0.1.0"
	appName = "grocery-voice-ledger"
)

func main() {
	home, _ := os.UserHomeDir()

	if err := rootCmd(afero.NewOsFs(), home).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
