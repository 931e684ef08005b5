// Package policy centralizes the authorization predicates consulted before
// each mutation. All functions are stateless: they decide from the actor's
// role/id and the resource's ownership fields alone.
package policy

import "tourbook/internal/domain"

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   int64
	Role domain.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// IsOwnerOrAdmin reports whether the actor owns the resource or is an admin.
// A nil owner (owner deleted) grants nobody but admins.
func IsOwnerOrAdmin(ownerID *int64, actor Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == actor.ID
}

// CanTransitionBooking encodes the transition authority rules: the booking's
// own user may only cancel; the tour's owning company or an admin may drive
// any transition the state machine allows. Nothing leaves cancelled.
func CanTransitionBooking(actor Actor, booking *domain.Booking, tourOwnerID *int64, next domain.BookingStatus) bool {
	if !booking.Status.CanTransition(next) {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	if tourOwnerID != nil && *tourOwnerID == actor.ID {
		return true
	}
	if booking.UserID != nil && *booking.UserID == actor.ID {
		return next == domain.BookingCancelled
	}
	return false
}

// CanModerateReview: moderation is an admin action.
func CanModerateReview(actor Actor) bool {
	return actor.IsAdmin()
}

// CanDeleteReview: the author or an admin.
func CanDeleteReview(actor Actor, authorID *int64) bool {
	return IsOwnerOrAdmin(authorID, actor)
}

// CanDeleteApplication: the applicant may delete while the application is
// pending or rejected; an admin may delete regardless of status.
func CanDeleteApplication(actor Actor, app *domain.CompanyApplication) bool {
	if actor.IsAdmin() {
		return true
	}
	if app.UserID != actor.ID {
		return false
	}
	return app.Status == domain.ApplicationPending || app.Status == domain.ApplicationRejected
}
