package shared

import (
	"time"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/domain/fleet"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// Actor is the explicitly supplied caller identity. The core never reads
// ambient session state; the transport layer resolves the identity and
// passes it down.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CarSnapshot is a point-in-time view of a car's master data. It is valid
// for the duration of one operation only; administrative status may
// change between queries.
type CarSnapshot struct {
	ID       uuid.UUID
	BranchID uuid.UUID
	Name     string
	Plate    string
	Status   fleet.AdminStatus
}

// ReservationSnapshot is the minimal read the command side needs before
// mutating a reservation.
type ReservationSnapshot struct {
	ID        uuid.UUID
	CarID     uuid.UUID
	UserID    uuid.UUID
	Window    booking.Window
	Status    booking.Status
	CreatedAt time.Time
}
