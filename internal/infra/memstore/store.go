// Package memstore is the in-memory reservation store, used by the
// memory store driver and by tests. Check-then-insert is serialized with
// one mutex per car, so writes for unrelated cars never block each other
// and there is no cross-car lock ordering to deadlock on.
package memstore

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/domain/fleet"
	"carpool-api/internal/infra"
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/usecase/queries"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	clk clock.Clock

	// mu guards the maps themselves; carLocks serialize the overlap
	// check and insert per car.
	mu           sync.RWMutex
	reservations map[uuid.UUID]*booking.Reservation
	byCar        map[uuid.UUID][]*booking.Reservation
	cars         map[uuid.UUID]shared.CarSnapshot
	branches     map[uuid.UUID]fleet.Branch

	locksMu  sync.Mutex
	carLocks map[uuid.UUID]*sync.Mutex
}

func New(clk clock.Clock) *Store {
	return &Store{
		clk:          clk,
		reservations: make(map[uuid.UUID]*booking.Reservation),
		byCar:        make(map[uuid.UUID][]*booking.Reservation),
		cars:         make(map[uuid.UUID]shared.CarSnapshot),
		branches:     make(map[uuid.UUID]fleet.Branch),
		carLocks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) lockFor(carID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if l, ok := s.carLocks[carID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.carLocks[carID] = l
	return l
}

// UpsertCar and UpsertBranch stand in for the master-data CRUD
// collaborator, which owns all fleet writes. Car data passes through the
// domain constructor so the store never holds an invalid car.
func (s *Store) UpsertCar(snap shared.CarSnapshot) error {
	car, err := fleet.NewCar(snap.ID, snap.BranchID, snap.Name, snap.Plate, snap.Status)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars[car.ID()] = shared.CarSnapshot{
		ID:       car.ID(),
		BranchID: car.BranchID(),
		Name:     car.Name(),
		Plate:    car.Plate(),
		Status:   car.Status(),
	}
	return nil
}

func (s *Store) UpsertBranch(branch fleet.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[branch.ID] = branch
}

// ---------------------------------------------------------------------------
// shared.ReservationStore
// ---------------------------------------------------------------------------

func (s *Store) Insert(ctx context.Context, res *booking.Reservation) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "insert aborted", err)
	}

	// Per-car critical section: nothing else may check or insert for
	// this car until we are done.
	carLock := s.lockFor(res.CarID())
	carLock.Lock()
	defer carLock.Unlock()

	s.mu.RLock()
	for _, existing := range s.byCar[res.CarID()] {
		if existing.IsActive() && existing.Window().Overlaps(res.Window()) {
			s.mu.RUnlock()
			return infra.WrapRepoErr(infra.KindConflict, "overlapping active reservation", nil)
		}
	}
	s.mu.RUnlock()

	stored := copyReservation(res)
	s.mu.Lock()
	s.reservations[stored.ID()] = stored
	s.byCar[stored.CarID()] = append(s.byCar[stored.CarID()], stored)
	s.mu.Unlock()
	return nil
}

func (s *Store) Cancel(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "cancel aborted", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation "+id.String(), nil)
	}
	res.Cancel(s.clk.Now())
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "find aborted", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation "+id.String(), nil)
	}
	return &shared.ReservationSnapshot{
		ID:        res.ID(),
		CarID:     res.CarID(),
		UserID:    res.UserID(),
		Window:    res.Window(),
		Status:    res.Status(),
		CreatedAt: res.CreatedAt(),
	}, nil
}

func (s *Store) ActiveOverlapping(ctx context.Context, carID uuid.UUID, window booking.Window) ([]*booking.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "overlap query aborted", err)
	}

	s.mu.RLock()
	var out []*booking.Reservation
	for _, res := range s.byCar[carID] {
		if res.IsActive() && res.Window().Overlaps(window) {
			out = append(out, copyReservation(res))
		}
	}
	s.mu.RUnlock()

	sortByStartThenID(out)
	return out, nil
}

// ---------------------------------------------------------------------------
// shared.FleetReader / shared.BranchReader
// ---------------------------------------------------------------------------

func (s *Store) CarByID(ctx context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "car lookup aborted", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	car, ok := s.cars[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "car "+id.String(), nil)
	}
	return &car, nil
}

func (s *Store) CarsByBranch(ctx context.Context, branchID uuid.UUID) ([]*shared.CarSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "car list aborted", err)
	}

	s.mu.RLock()
	var out []*shared.CarSnapshot
	for _, car := range s.cars {
		if car.BranchID == branchID {
			out = append(out, &car)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *shared.CarSnapshot) int {
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func (s *Store) ListBranches(ctx context.Context) ([]fleet.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "branch list aborted", err)
	}

	s.mu.RLock()
	out := make([]fleet.Branch, 0, len(s.branches))
	for _, b := range s.branches {
		out = append(out, b)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b fleet.Branch) int {
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// queries.BookingViewRepo (separate facade: the write-side FindByID
// returns snapshots, the read side returns composed views)
// ---------------------------------------------------------------------------

type BookingViews struct {
	s *Store
}

func (s *Store) BookingViews() *BookingViews {
	return &BookingViews{s: s}
}

func (v *BookingViews) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "view lookup aborted", err)
	}

	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	res, ok := v.s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation "+id.String(), nil)
	}
	return v.s.viewLocked(res), nil
}

func (v *BookingViews) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "view list aborted", err)
	}

	v.s.mu.RLock()
	var matched []*booking.Reservation
	for _, res := range v.s.reservations {
		if res.UserID() == userID {
			matched = append(matched, copyReservation(res))
		}
	}
	v.s.mu.RUnlock()

	return v.toViews(matched), nil
}

func (v *BookingViews) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "view list aborted", err)
	}

	v.s.mu.RLock()
	matched := make([]*booking.Reservation, 0, len(v.s.reservations))
	for _, res := range v.s.reservations {
		matched = append(matched, copyReservation(res))
	}
	v.s.mu.RUnlock()

	return v.toViews(matched), nil
}

func (v *BookingViews) toViews(rs []*booking.Reservation) []*queries.BookingView {
	sortByStartThenID(rs)
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*queries.BookingView, len(rs))
	for i, res := range rs {
		out[i] = v.s.viewLocked(res)
	}
	return out
}

// viewLocked requires s.mu held (read or write).
func (s *Store) viewLocked(res *booking.Reservation) *queries.BookingView {
	car := s.cars[res.CarID()]
	branch := s.branches[res.BranchID()]
	return &queries.BookingView{
		ID:           res.ID(),
		CarID:        res.CarID(),
		CarName:      car.Name,
		BranchID:     res.BranchID(),
		BranchName:   branch.Name,
		UserID:       res.UserID(),
		StartAt:      res.Window().Start(),
		EndAt:        res.Window().End(),
		Purpose:      res.Details().Purpose,
		Notes:        res.Details().Notes,
		FromLocation: res.Details().FromLocation,
		ToLocation:   res.Details().ToLocation,
		Status:       res.Status().String(),
		CreatedAt:    res.CreatedAt(),
	}
}

func copyReservation(res *booking.Reservation) *booking.Reservation {
	return booking.ReconstructReservation(
		res.ID(), res.CarID(), res.BranchID(), res.UserID(),
		res.Window(), res.Details(), res.Status(),
		res.CreatedAt(), res.UpdatedAt(),
	)
}

func sortByStartThenID(rs []*booking.Reservation) {
	slices.SortFunc(rs, func(a, b *booking.Reservation) int {
		if a.Window().Start().Before(b.Window().Start()) {
			return -1
		}
		if b.Window().Start().Before(a.Window().Start()) {
			return 1
		}
		aID, bID := a.ID(), b.ID()
		return bytes.Compare(aID[:], bID[:])
	})
}
