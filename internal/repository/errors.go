package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint. The partial unique indexes created in database.Migrate are the
// authoritative guards; service-level pre-checks are only a fast path.
var ErrDuplicate = errors.New("duplicate")

// ErrCapacityExceeded is returned when a booking would oversell a tour date.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrTourInactive is returned when booking a deactivated tour.
var ErrTourInactive = errors.New("tour is not active")

// ErrStale is returned when a guarded update matched no row, meaning the
// entity changed state concurrently.
var ErrStale = errors.New("stale state")

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite surfaces constraint violations as plain driver errors.
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "SQLSTATE 23505") ||
		strings.Contains(s, "constraint failed")
}
