package repository

import (
	"context"
	"testing"
	"time"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deleting a user must keep their bookings, reviews and owned company around
// with the reference nulled, not drop or orphan them.
func TestUserRepository_DeleteNullsReferences(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@test.local", domain.RoleCompany)
	alice := seedUser(t, db, "alice@test.local", domain.RoleClient)

	tour := seedTour(t, db, owner.ID, 10)
	b := newBooking(tour.ID, alice.ID, 2, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, bookings.CreateAdmitted(ctx, b))

	rv := &domain.Review{
		AuthorID:   &alice.ID,
		TargetType: domain.ReviewTargetTour,
		TourID:     &tour.ID,
		Rating:     4,
	}
	require.NoError(t, db.Create(rv).Error)

	require.NoError(t, users.Delete(ctx, alice.ID))

	var row map[string]any
	require.NoError(t, db.Table("bookings").Where("id = ?", b.ID).Take(&row).Error)
	assert.Nil(t, row["user_id"])

	row = nil
	require.NoError(t, db.Table("reviews").Where("id = ?", rv.ID).Take(&row).Error)
	assert.Nil(t, row["author_id"])

	// The rows themselves survive the delete.
	var count int64
	require.NoError(t, db.Table("bookings").Where("id = ?", b.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Deleting the owner detaches the company instead of cascading into it.
	require.NoError(t, users.Delete(ctx, owner.ID))

	row = nil
	require.NoError(t, db.Table("companies").Where("id = ?", tour.CompanyID).Take(&row).Error)
	assert.Nil(t, row["owner_id"])

	require.NoError(t, db.Table("tours").Where("id = ?", tour.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "owner@test.local", domain.RoleCompany)
	alice := seedUser(t, db, "alice@test.local", domain.RoleClient)
	bob := seedUser(t, db, "bob@test.local", domain.RoleClient)

	require.NoError(t, users.SetActive(ctx, bob.ID, false))

	clients, total, err := users.List(ctx, string(domain.RoleClient), nil, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, clients, 2)

	active := true
	activeClients, total, err := users.List(ctx, string(domain.RoleClient), &active, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, activeClients, 1)
	assert.Equal(t, alice.ID, activeClients[0].ID)

	byEmail, total, err := users.List(ctx, "", nil, "bob@", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byEmail, 1)
	assert.Equal(t, bob.ID, byEmail[0].ID)
}

func TestUserRepository_SetActive_NotFound(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	assert.ErrorIs(t, users.SetActive(context.Background(), 999, false), ErrNotFound)
}
