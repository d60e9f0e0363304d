// Package cmd implements the shopfront CLI commands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/petalworks/shopfront"
	"github.com/petalworks/shopfront/internal/config"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Storefront catalog and cart client",
	Long: `Shopfront aggregates the storefront's remote product database with the
bundled local-stock dataset and manages a persistent shopping cart.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds a client from the resolved configuration.
func newClient() (shopfront.Client, error) {
	cfg := config.Load()
	return shopfront.New(
		shopfront.WithDatabaseURL(cfg.DatabaseURL),
		shopfront.WithStorePath(cfg.StorePath),
		shopfront.WithFetchTimeout(cfg.FetchTimeout),
	)
}
