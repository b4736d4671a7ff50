package queries

import (
	"time"

	"carpool-api/internal/domain/fleet"

	"github.com/google/uuid"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityMaintenance AvailabilityStatus = "maintenance"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
)

// BusySlot is one reservation window overlapping a queried window,
// returned as evidence of conflict. Keys match what the dashboard renders.
type BusySlot struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// Verdict is the computed availability of one car for one query window.
// Ephemeral: computed per query, never stored, stale the moment a write
// lands. BusySlots is populated only for AvailabilityUnavailable.
type Verdict struct {
	Status    AvailabilityStatus `json:"status"`
	BusySlots []BusySlot         `json:"busySlots,omitempty"`
}

// AdministrativePolicy decides how an operator-set car status maps to an
// availability verdict before the schedule is consulted. It returns the
// verdict status and whether the administrative state decides the verdict
// on its own (short-circuiting the overlap query).
//
// Kept as a named, injectable function so the precedence rule can be
// revisited without touching the engine's control flow.
type AdministrativePolicy func(status fleet.AdminStatus) (AvailabilityStatus, bool)

// DefaultAdministrativePolicy: maintenance dominates the schedule, and
// retired folds into the same bucket so the verdict vocabulary stays
// stable for the dashboard. A retired car is never reported available.
func DefaultAdministrativePolicy(status fleet.AdminStatus) (AvailabilityStatus, bool) {
	switch status {
	case fleet.StatusMaintenance, fleet.StatusRetired:
		return AvailabilityMaintenance, true
	default:
		return AvailabilityAvailable, false
	}
}

// Read models (DTO for read side)

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	CarID        uuid.UUID `json:"carId"`
	CarName      string    `json:"carName"`
	BranchID     uuid.UUID `json:"branchId"`
	BranchName   string    `json:"branchName"`
	UserID       uuid.UUID `json:"userId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Purpose      string    `json:"purpose,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FromLocation string    `json:"fromLocation,omitempty"`
	ToLocation   string    `json:"toLocation,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CarView struct {
	ID       uuid.UUID `json:"id"`
	BranchID uuid.UUID `json:"branchId"`
	Name     string    `json:"name"`
	Plate    string    `json:"plate,omitempty"`
	Status   string    `json:"status"`
}

type BranchView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
}
