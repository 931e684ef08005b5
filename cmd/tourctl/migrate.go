package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tourbook/internal/config"
	"tourbook/internal/database"

	"gorm.io/gorm"
)

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg.DatabaseURL)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate failed: %w", err)
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}
