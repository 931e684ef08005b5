package repository

import (
	"context"
	"testing"

	"tourbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_ApproveCreatesCompanyAndPromotes(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@test.local", domain.RoleAdmin)
	applicant := seedUser(t, db, "applicant@test.local", domain.RoleClient)

	app := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Highland Trails",
		CompanyAddress: "12 Summit Road",
		Status:         domain.ApplicationPending,
	}
	require.NoError(t, repo.Create(ctx, app))

	company, err := repo.Approve(ctx, app, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, company)

	assert.Equal(t, "Highland Trails", company.Name)
	require.NotNil(t, company.OwnerID)
	assert.Equal(t, applicant.ID, *company.OwnerID)

	assert.Equal(t, domain.ApplicationApproved, app.Status)
	require.NotNil(t, app.ReviewedAt)
	assert.Equal(t, admin.ID, *app.ReviewedByAdminID)

	var u domain.User
	require.NoError(t, db.First(&u, applicant.ID).Error)
	assert.Equal(t, domain.RoleCompany, u.Role)
}

// A reviewed application must never be approvable again, and a failed
// approval must leave no partial state behind.
func TestApplicationRepository_ApproveIsOneWay(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@test.local", domain.RoleAdmin)
	applicant := seedUser(t, db, "applicant@test.local", domain.RoleClient)

	app := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Highland Trails",
		CompanyAddress: "12 Summit Road",
		Status:         domain.ApplicationPending,
	}
	require.NoError(t, repo.Create(ctx, app))

	// Another admin rejected it first.
	require.NoError(t, db.Model(&domain.CompanyApplication{}).
		Where("id = ?", app.ID).
		Update("status", domain.ApplicationRejected).Error)

	_, err := repo.Approve(ctx, app, admin.ID)
	assert.ErrorIs(t, err, ErrStale)

	// The transaction rolled back: no company, role untouched.
	var companies int64
	require.NoError(t, db.Model(&domain.Company{}).Count(&companies).Error)
	assert.Equal(t, int64(0), companies)

	var u domain.User
	require.NoError(t, db.First(&u, applicant.ID).Error)
	assert.Equal(t, domain.RoleClient, u.Role)
}

func TestApplicationRepository_ApproveRejectsExistingOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@test.local", domain.RoleAdmin)
	applicant := seedUser(t, db, "applicant@test.local", domain.RoleClient)

	// Applicant somehow already owns a company.
	existing := &domain.Company{Name: "Old Venture", Address: "1 Elm", OwnerID: &applicant.ID}
	require.NoError(t, db.Create(existing).Error)

	app := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Highland Trails",
		CompanyAddress: "12 Summit Road",
		Status:         domain.ApplicationPending,
	}
	require.NoError(t, repo.Create(ctx, app))

	_, err := repo.Approve(ctx, app, admin.ID)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestApplicationRepository_OnePendingPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	applicant := seedUser(t, db, "applicant@test.local", domain.RoleClient)

	first := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Highland Trails",
		CompanyAddress: "12 Summit Road",
		Status:         domain.ApplicationPending,
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Other Venture",
		CompanyAddress: "1 Elm",
		Status:         domain.ApplicationPending,
	}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicate)

	// A rejected application frees the slot for a fresh one.
	admin := seedUser(t, db, "admin@test.local", domain.RoleAdmin)
	require.NoError(t, repo.Reject(ctx, first, admin.ID, "incomplete"))
	require.NoError(t, repo.Create(ctx, second))
}

func TestApplicationRepository_RejectStampsReason(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@test.local", domain.RoleAdmin)
	applicant := seedUser(t, db, "applicant@test.local", domain.RoleClient)

	app := &domain.CompanyApplication{
		UserID:         applicant.ID,
		CompanyName:    "Highland Trails",
		CompanyAddress: "12 Summit Road",
		Status:         domain.ApplicationPending,
	}
	require.NoError(t, repo.Create(ctx, app))

	require.NoError(t, repo.Reject(ctx, app, admin.ID, "incomplete details"))

	got, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, got.Status)
	assert.Equal(t, "incomplete details", got.RejectionReason)
	require.NotNil(t, got.ReviewedByAdminID)
	assert.Equal(t, admin.ID, *got.ReviewedByAdminID)

	// Rejected is terminal too.
	assert.ErrorIs(t, repo.Reject(ctx, got, admin.ID, "again"), ErrStale)
}
