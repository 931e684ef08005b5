package database

import (
	"log"
	"strings"
	"time"

	"tourbook/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" driver used below.
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	// SQLite ships with foreign_keys off; without the pragma every
	// OnDelete:CASCADE / SET NULL rule in the schema is inert and deletes
	// leave orphans behind. The pragma is per-connection, so it goes into
	// the DSN rather than a one-off Exec against the pool.
	if strings.Contains(dsn, "?") {
		dsn += "&_pragma=foreign_keys(1)"
	} else {
		dsn += "?_pragma=foreign_keys(1)"
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema plus the constraints the application logic leans
// on. The partial unique indexes are the authoritative guards behind the
// fast-path duplicate pre-checks in the services; the same CREATE INDEX syntax
// is valid on both PostgreSQL and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Company{},
		&domain.Tour{},
		&bookingTable{},
		&domain.Review{},
		&domain.CompanyApplication{},
	); err != nil {
		return err
	}

	stmts := []string{
		// One non-cancelled booking per (user, tour, date).
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_user_tour_date_active
		 ON bookings (user_id, tour_id, date) WHERE status != 'cancelled'`,
		// One review per author per tour and per company.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_reviews_author_tour
		 ON reviews (author_id, tour_id) WHERE tour_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_reviews_author_company
		 ON reviews (author_id, company_id) WHERE company_id IS NOT NULL`,
		// One pending application per user.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_applications_user_pending
		 ON company_applications (user_id) WHERE status = 'pending'`,
		// Capacity sum query: tour + date + status.
		`CREATE INDEX IF NOT EXISTS ix_bookings_tour_date_status
		 ON bookings (tour_id, date, status)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// bookingTable mirrors the bookings row layout for AutoMigrate. The
// repository keeps its own model struct; domain.Booking stays tag-free.
type bookingTable struct {
	ID                int64     `gorm:"primaryKey"`
	Reference         string    `gorm:"uniqueIndex;size:36"`
	TourID            int64     `gorm:"index;not null"`
	UserID            *int64    `gorm:"index"`
	ParticipantsCount int       `gorm:"default:1;not null"`
	Date              time.Time `gorm:"not null"`
	Status            string    `gorm:"type:varchar(16);default:pending;not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Tour *domain.Tour `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	User *domain.User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (bookingTable) TableName() string { return "bookings" }
