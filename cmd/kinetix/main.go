package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kinetix-inc/kinetix/internal/interfaces/cli/migrate"
	"github.com/kinetix-inc/kinetix/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinetix",
		Short: "Kinetix - gym back-office service",
		Long:  `Kinetix manages gym memberships, subscriptions, billing and email campaigns.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
