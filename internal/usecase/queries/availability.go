package queries

import (
	"context"
	"sync"
	"time"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/infra"
	"carpool-api/internal/pkg/errs"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidWindow = errs.New("invalid query window")
	ErrCarNotFound   = errs.New("car not found")
	ErrStorageFailed = errs.New("storage operation failed")
)

// checkBatchConcurrency bounds the per-car fan-out of one batch query.
const checkBatchConcurrency = 8

// AvailabilityReader is the read-only slice of the reservation store the
// engine needs.
type AvailabilityReader interface {
	ActiveOverlapping(ctx context.Context, carID uuid.UUID, window booking.Window) ([]*booking.Reservation, error)
}

type AvailabilityQueries interface {
	// CheckBatch computes one verdict per car for the given window.
	// All-or-nothing: an invalid window or an unknown car fails the
	// whole batch. Verdicts are computed independently per car with no
	// cross-car locking; callers must re-validate at booking time.
	CheckBatch(ctx context.Context, carIDs []uuid.UUID, startAt, endAt time.Time) (map[uuid.UUID]Verdict, error)
}

type availabilityQueriesImpl struct {
	fleet  shared.FleetReader
	reader AvailabilityReader
	policy AdministrativePolicy
}

func NewAvailabilityQueries(fleet shared.FleetReader, reader AvailabilityReader, policy AdministrativePolicy) AvailabilityQueries {
	return &availabilityQueriesImpl{
		fleet:  fleet,
		reader: reader,
		policy: policy,
	}
}

func (q *availabilityQueriesImpl) CheckBatch(
	ctx context.Context,
	carIDs []uuid.UUID,
	startAt, endAt time.Time,
) (map[uuid.UUID]Verdict, error) {
	window, err := booking.NewWindow(startAt, endAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	ids := dedupe(carIDs)
	verdicts := make(map[uuid.UUID]Verdict, len(ids))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkBatchConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			verdict, cerr := q.checkOne(gctx, id, window)
			if cerr != nil {
				return cerr
			}
			mu.Lock()
			verdicts[id] = verdict
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func (q *availabilityQueriesImpl) checkOne(ctx context.Context, carID uuid.UUID, window booking.Window) (Verdict, error) {
	car, err := q.fleet.CarByID(ctx, carID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return Verdict{}, errs.Mark(errs.Wrap(err, "car "+carID.String()), ErrCarNotFound)
		}
		return Verdict{}, errs.Mark(err, ErrStorageFailed)
	}

	// Administrative status dominates schedule status.
	if status, decided := q.policy(car.Status); decided {
		return Verdict{Status: status}, nil
	}

	overlapping, err := q.reader.ActiveOverlapping(ctx, carID, window)
	if err != nil {
		return Verdict{}, errs.Mark(err, ErrStorageFailed)
	}
	if len(overlapping) == 0 {
		return Verdict{Status: AvailabilityAvailable}, nil
	}

	slots := make([]BusySlot, len(overlapping))
	for i, res := range overlapping {
		slots[i] = BusySlot{StartAt: res.Window().Start(), EndAt: res.Window().End()}
	}
	return Verdict{Status: AvailabilityUnavailable, BusySlots: slots}, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
