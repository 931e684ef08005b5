package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "tourctl",
		Short: "Operational tooling for the tour booking backend",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		createAdminCmd(),
		seedCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
