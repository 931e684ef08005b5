package notify

import (
	"tourbook/internal/domain"
)

// Notifier fans booking events out through the hub. It satisfies the
// booking module's NotificationSender; delivery is best-effort and never
// blocks or fails the calling operation.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyBookingCreated(ownerUserID int64, b *domain.Booking) {
	n.hub.SendToUser(ownerUserID, newBookingEvent(EventBookingCreated, b))
}

func (n *Notifier) NotifyBookingCancelled(ownerUserID int64, b *domain.Booking) {
	n.hub.SendToUser(ownerUserID, newBookingEvent(EventBookingCancelled, b))
}
