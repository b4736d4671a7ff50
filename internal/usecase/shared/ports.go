package shared

import (
	"context"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/domain/fleet"

	"github.com/google/uuid"
)

// ReservationStore owns the authoritative set of reservations.
//
// Insert is the linchpin of the whole system: the overlap check and the
// insert must form a single atomic unit per car, so that active
// reservations of a car are pairwise non-overlapping at every observable
// instant. Implementations serialize per car (mutex or row lock); they
// must not serialize across unrelated cars.
type ReservationStore interface {
	// Insert admits the reservation only if no active reservation of the
	// same car overlaps its window. Overlap is reported as a
	// KindConflict repository error.
	Insert(ctx context.Context, res *booking.Reservation) error

	// Cancel transitions active -> cancelled. Idempotent on an already
	// cancelled reservation; KindNotFound for unknown IDs. Reservations
	// are never physically removed.
	Cancel(ctx context.Context, id uuid.UUID) error

	// FindByID returns the command-side snapshot of one reservation.
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)

	// ActiveOverlapping returns the active reservations of the car whose
	// windows overlap the query window, ordered by start ascending with
	// ID ascending tie-break.
	ActiveOverlapping(ctx context.Context, carID uuid.UUID, window booking.Window) ([]*booking.Reservation, error)
}

// FleetReader exposes car master data as read-only snapshots. Writes
// belong to the excluded CRUD collaborator.
type FleetReader interface {
	CarByID(ctx context.Context, id uuid.UUID) (*CarSnapshot, error)
	CarsByBranch(ctx context.Context, branchID uuid.UUID) ([]*CarSnapshot, error)
}

// BranchReader exposes branch reference data.
type BranchReader interface {
	ListBranches(ctx context.Context) ([]fleet.Branch, error)
}
