package request

import (
	"time"

	"github.com/google/uuid"
)

type CheckAvailabilityRequest struct {
	CarIDs  []uuid.UUID `json:"carIds" binding:"required,min=1"`
	StartAt time.Time   `json:"startAt" binding:"required"`
	EndAt   time.Time   `json:"endAt" binding:"required"`
}

type CreateBookingRequest struct {
	CarID        uuid.UUID `json:"carId" binding:"required"`
	UserID       uuid.UUID `json:"userId" binding:"required"`
	StartAt      time.Time `json:"startAt" binding:"required"`
	EndAt        time.Time `json:"endAt" binding:"required"`
	Purpose      string    `json:"purpose,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FromLocation string    `json:"fromLocation,omitempty"`
	ToLocation   string    `json:"toLocation,omitempty"`
}

// CancelBookingRequest carries the caller identity explicitly; there is
// no auth layer in front of this service.
type CancelBookingRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Role   string    `json:"role,omitempty"`
}
