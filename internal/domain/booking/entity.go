package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripDetails carries the rider-facing metadata attached to a booking.
// All fields are optional free text.
type TripDetails struct {
	Purpose      string
	Notes        string
	FromLocation string
	ToLocation   string
}

func NewTripDetails(purpose, notes, from, to string) TripDetails {
	return TripDetails{
		Purpose:      strings.TrimSpace(purpose),
		Notes:        strings.TrimSpace(notes),
		FromLocation: strings.TrimSpace(from),
		ToLocation:   strings.TrimSpace(to),
	}
}

// Reservation is the aggregate owned by the reservation store. After
// creation the only permitted transition is active -> cancelled; rows are
// retained for audit and never deleted.
type Reservation struct {
	id        uuid.UUID
	carID     uuid.UUID
	branchID  uuid.UUID
	userID    uuid.UUID
	window    Window
	details   TripDetails
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(carID, branchID, userID uuid.UUID, window Window, details TripDetails, now time.Time) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		carID:     carID,
		branchID:  branchID,
		userID:    userID,
		window:    window,
		details:   details,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructReservation(
	id, carID, branchID, userID uuid.UUID,
	window Window,
	details TripDetails,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		carID:     carID,
		branchID:  branchID,
		userID:    userID,
		window:    window,
		details:   details,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// Cancel transitions the reservation to cancelled. Cancelling an already
// cancelled reservation is a no-op, which makes the operation idempotent.
func (r *Reservation) Cancel(now time.Time) {
	if r.status == StatusCancelled {
		return
	}
	r.status = StatusCancelled
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) CarID() uuid.UUID     { return r.carID }
func (r *Reservation) BranchID() uuid.UUID  { return r.branchID }
func (r *Reservation) UserID() uuid.UUID    { return r.userID }
func (r *Reservation) Window() Window       { return r.window }
func (r *Reservation) Details() TripDetails { return r.details }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
