package main

import (
	"os"

	"github.com/spf13/cobra"

	"stocktake/internal/interfaces/cli/migrate"
	"stocktake/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stocktake",
		Short: "Stocktake - warehouse counting backend",
		Long:  `Stocktake serves the warehouse counting sheet: a cached proxy for ECOUNT ERP inventory queries plus the counting-progress API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
