package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"tourbook/internal/database"
	"tourbook/internal/domain"
)

// createAdminCmd provisions an admin account. Admins are never created
// through the HTTP API; this is the only entry point.
func createAdminCmd() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user (idempotent per email)",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || len(password) < 8 {
				return fmt.Errorf("--email and a --password of at least 8 characters are required")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			var existing domain.User
			if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
				if existing.Role == domain.RoleAdmin {
					fmt.Printf("admin %s already exists\n", email)
					return nil
				}
				return fmt.Errorf("user %s exists with role %s", email, existing.Role)
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			u := domain.User{
				FullName:     fullName,
				Email:        email,
				PasswordHash: string(hash),
				Role:         domain.RoleAdmin,
				IsActive:     true,
			}
			if err := db.Create(&u).Error; err != nil {
				return err
			}

			fmt.Printf("admin created: %s (id=%d)\n", email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (min 8 characters)")
	cmd.Flags().StringVar(&fullName, "name", "Administrator", "Full name")

	return cmd
}
