package main

import (
	"os"

	"github.com/spf13/cobra"

	"storefix/internal/interfaces/cli/migrate"
	"storefix/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "storefix",
		Short: "Storefix - maintenance ticket workflow service",
		Long:  `Storefix runs the maintenance ticket and work order workflow service, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
