// Package main provides the entry point for the shopfront CLI tool.
package main

import (
	"os"

	"github.com/petalworks/shopfront/cmd/shopfront/cmd"
	"github.com/petalworks/shopfront/pkg/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
