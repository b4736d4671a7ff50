package commands

import (
	"context"
	"time"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/infra"
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/pkg/errs"
	"carpool-api/internal/usecase/queries"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow          = errs.New("invalid booking window")
	ErrCarNotFound            = errs.New("car not found")
	ErrCarUnavailable         = errs.New("car not available for booking")
	ErrBookingConflict        = errs.New("booking window conflict")
	ErrBookingNotFound        = errs.New("booking not found")
	ErrCancelForbidden        = errs.New("requester may not cancel this booking")
	ErrStorageOperationFailed = errs.New("storage operation failed")
)

// ConflictError carries the busy slots that collided with a rejected
// booking so callers can render them exactly as the availability query
// would have. Overlap is a business rejection, never retried.
type ConflictError struct {
	BusySlots []queries.BusySlot
	cause     error
}

func (e *ConflictError) Error() string {
	return "booking window conflict"
}

func (e *ConflictError) Unwrap() error {
	return e.cause
}

// CancelAuthorizer is the precondition hook for cancellation. The real
// authorization decision belongs to the excluded auth collaborator; the
// core only enforces the ownership check it is handed.
type CancelAuthorizer interface {
	CanCancel(actor shared.Actor, ownerID uuid.UUID) bool
}

// OwnerOrAdmin permits the booking owner and administrators.
type OwnerOrAdmin struct{}

func (OwnerOrAdmin) CanCancel(actor shared.Actor, ownerID uuid.UUID) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}

type CreateBookingRequest struct {
	CarID        uuid.UUID
	UserID       uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	Purpose      string
	Notes        string
	FromLocation string
	ToLocation   string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
}

type bookingCommandsImpl struct {
	store      shared.ReservationStore
	fleet      shared.FleetReader
	views      queries.BookingViewRepo
	authorizer CancelAuthorizer
	clock      clock.Clock
}

func NewBookingCommands(
	store shared.ReservationStore,
	fleet shared.FleetReader,
	views queries.BookingViewRepo,
	authorizer CancelAuthorizer,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		store:      store,
		fleet:      fleet,
		views:      views,
		authorizer: authorizer,
		clock:      clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error) {
	window, err := booking.NewWindow(req.StartAt, req.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	car, err := c.fleet.CarByID(ctx, req.CarID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrCarNotFound)
		}
		return nil, errs.Mark(err, ErrStorageOperationFailed)
	}
	if !car.Status.Bookable() {
		return nil, ErrCarUnavailable
	}

	details := booking.NewTripDetails(req.Purpose, req.Notes, req.FromLocation, req.ToLocation)
	// Branch comes from the car's master data; client-sent branch IDs are
	// not trusted.
	entity := booking.NewReservation(car.ID, car.BranchID, req.UserID, window, details, c.clock.Now())

	if err := c.store.Insert(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, c.conflictWithBusySlots(ctx, car.ID, window, err)
		}
		return nil, errs.Mark(err, ErrStorageOperationFailed)
	}

	view, err := c.views.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrStorageOperationFailed)
	}
	return view, nil
}

// conflictWithBusySlots re-reads the overlapping windows so the rejection
// carries the same evidence a checkBatch verdict would have shown. The
// conflict itself was already decided atomically inside the store.
func (c *bookingCommandsImpl) conflictWithBusySlots(ctx context.Context, carID uuid.UUID, window booking.Window, cause error) error {
	conflict := &ConflictError{cause: cause}
	overlapping, err := c.store.ActiveOverlapping(ctx, carID, window)
	if err == nil {
		conflict.BusySlots = make([]queries.BusySlot, len(overlapping))
		for i, res := range overlapping {
			conflict.BusySlots[i] = queries.BusySlot{StartAt: res.Window().Start(), EndAt: res.Window().End()}
		}
	}
	return errs.Mark(conflict, ErrBookingConflict)
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	snap, err := c.store.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookingNotFound)
		}
		return errs.Mark(err, ErrStorageOperationFailed)
	}

	if !c.authorizer.CanCancel(actor, snap.UserID) {
		return ErrCancelForbidden
	}

	if err := c.store.Cancel(ctx, bookingID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookingNotFound)
		}
		return errs.Mark(err, ErrStorageOperationFailed)
	}
	return nil
}
