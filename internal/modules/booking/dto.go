package booking

import "time"

type CreateBookingRequest struct {
	TourID            int64     `json:"tour_id" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	ParticipantsCount int       `json:"participants_count" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
