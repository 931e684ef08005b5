package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"tourbook/internal/database"
	"tourbook/internal/domain"
)

// seedCmd wipes the database and loads a small demo dataset. Dev only.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			// Delete in FK order.
			for _, table := range []string{
				"reviews", "bookings", "company_applications", "tours", "companies", "users",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					return err
				}
			}

			adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			admin := domain.User{
				FullName:     "Administrator",
				Email:        "admin@tourbook.local",
				PasswordHash: string(adminHash),
				Role:         domain.RoleAdmin,
				IsActive:     true,
			}
			if err := db.Create(&admin).Error; err != nil {
				return err
			}

			clientHash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
			clients := make([]domain.User, 0, 3)
			for i, email := range []string{"alice@example.com", "bob@example.com", "carol@example.com"} {
				u := domain.User{
					FullName:     fmt.Sprintf("Demo Client %d", i+1),
					Email:        email,
					PasswordHash: string(clientHash),
					Role:         domain.RoleClient,
					IsActive:     true,
				}
				if err := db.Create(&u).Error; err != nil {
					return err
				}
				clients = append(clients, u)
			}

			ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
			owner := domain.User{
				FullName:     "Demo Owner",
				Email:        "owner@example.com",
				PasswordHash: string(ownerHash),
				Role:         domain.RoleCompany,
				IsActive:     true,
			}
			if err := db.Create(&owner).Error; err != nil {
				return err
			}

			company := domain.Company{
				Name:      "Highland Trails",
				Address:   "12 Summit Road",
				Website:   "https://highland-trails.example.com",
				WorkHours: "09:00-18:00",
				OwnerID:   &owner.ID,
			}
			if err := db.Create(&company).Error; err != nil {
				return err
			}

			tours := []domain.Tour{
				{
					Title:     "Alpine Lake Day Hike",
					Price:     75,
					Location:  "North Ridge",
					Duration:  "8h",
					Capacity:  10,
					IsActive:  true,
					CompanyID: company.ID,
				},
				{
					Title:     "Sunset Kayak Trip",
					Price:     60,
					Location:  "Crescent Bay",
					Duration:  "3h",
					Capacity:  16,
					IsActive:  true,
					CompanyID: company.ID,
				},
			}
			for i := range tours {
				if err := db.Create(&tours[i]).Error; err != nil {
					return err
				}
			}

			date := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
			if err := db.Exec(
				`INSERT INTO bookings (reference, tour_id, user_id, participants_count, date, status, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				"seed-booking-0001", tours[0].ID, clients[0].ID, 2, date, domain.BookingPending,
				time.Now().UTC(), time.Now().UTC(),
			).Error; err != nil {
				return err
			}

			fmt.Println("demo data loaded")
			fmt.Println("  admin:  admin@tourbook.local / admin123")
			fmt.Println("  owner:  owner@example.com / owner123")
			fmt.Println("  client: alice@example.com / client123")
			return nil
		},
	}
}
