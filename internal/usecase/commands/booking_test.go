//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool-api/internal/domain/fleet"
	"carpool-api/internal/infra/memstore"
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/usecase/commands"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memstore.Store
	clk   *clock.MockClock
	cmd   commands.BookingCommands
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewMockClock(base)
	store := memstore.New(clk)
	cmd := commands.NewBookingCommands(store, store, store.BookingViews(), commands.OwnerOrAdmin{}, clk)
	return &fixture{store: store, clk: clk, cmd: cmd}
}

func (f *fixture) addCar(t *testing.T, status fleet.AdminStatus) uuid.UUID {
	t.Helper()
	branch := fleet.Branch{ID: uuid.New(), Name: "Downtown"}
	f.store.UpsertBranch(branch)
	car := shared.CarSnapshot{ID: uuid.New(), BranchID: branch.ID, Name: "Corolla 3", Status: status}
	require.NoError(t, f.store.UpsertCar(car))
	return car.ID
}

func createReq(carID, userID uuid.UUID, startOffset, endOffset time.Duration) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		CarID:   carID,
		UserID:  userID,
		StartAt: base.Add(startOffset),
		EndAt:   base.Add(endOffset),
		Purpose: "client visit",
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns composed view", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusAvailable)
		userID := uuid.New()

		view, err := f.cmd.CreateBooking(ctx, createReq(carID, userID, time.Hour, 3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, carID, view.CarID)
		assert.Equal(t, "Corolla 3", view.CarName)
		assert.Equal(t, "Downtown", view.BranchName)
		assert.Equal(t, userID, view.UserID)
		assert.Equal(t, "active", view.Status)
		assert.Equal(t, base, view.CreatedAt)
	})

	t.Run("invalid window", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusAvailable)

		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 3*time.Hour, time.Hour))
		assert.ErrorIs(t, err, commands.ErrInvalidWindow)
	})

	t.Run("unknown car", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.cmd.CreateBooking(ctx, createReq(uuid.New(), uuid.New(), 0, time.Hour))
		assert.ErrorIs(t, err, commands.ErrCarNotFound)
	})

	t.Run("maintenance car rejected", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusMaintenance)

		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 0, time.Hour))
		assert.ErrorIs(t, err, commands.ErrCarUnavailable)
	})

	t.Run("retired car rejected", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusRetired)

		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 0, time.Hour))
		assert.ErrorIs(t, err, commands.ErrCarUnavailable)
	})

	t.Run("overlap rejected with busy slots", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusAvailable)

		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 0, 2*time.Hour))
		require.NoError(t, err)

		_, err = f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), time.Hour, 3*time.Hour))
		require.ErrorIs(t, err, commands.ErrBookingConflict)

		var conflict *commands.ConflictError
		require.True(t, errors.As(err, &conflict))
		require.Len(t, conflict.BusySlots, 1)
		assert.Equal(t, base, conflict.BusySlots[0].StartAt)
		assert.Equal(t, base.Add(2*time.Hour), conflict.BusySlots[0].EndAt)
	})

	t.Run("adjacent windows both accepted", func(t *testing.T) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusAvailable)

		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 0, 2*time.Hour))
		require.NoError(t, err)
		_, err = f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 2*time.Hour, 4*time.Hour))
		assert.NoError(t, err)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, uuid.UUID, uuid.UUID) {
		f := newFixture(t)
		carID := f.addCar(t, fleet.StatusAvailable)
		ownerID := uuid.New()
		view, err := f.cmd.CreateBooking(ctx, createReq(carID, ownerID, 0, 2*time.Hour))
		require.NoError(t, err)
		return f, view.ID, ownerID
	}

	t.Run("owner may cancel", func(t *testing.T) {
		f, bookingID, ownerID := setup(t)
		err := f.cmd.CancelBooking(ctx, bookingID, shared.Actor{ID: ownerID})
		assert.NoError(t, err)
	})

	t.Run("admin may cancel", func(t *testing.T) {
		f, bookingID, _ := setup(t)
		err := f.cmd.CancelBooking(ctx, bookingID, shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		f, bookingID, _ := setup(t)
		err := f.cmd.CancelBooking(ctx, bookingID, shared.Actor{ID: uuid.New()})
		assert.ErrorIs(t, err, commands.ErrCancelForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		err := f.cmd.CancelBooking(ctx, uuid.New(), shared.Actor{ID: uuid.New()})
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("cancelled window can be rebooked", func(t *testing.T) {
		f, bookingID, ownerID := setup(t)
		require.NoError(t, f.cmd.CancelBooking(ctx, bookingID, shared.Actor{ID: ownerID}))

		carID := mustCarOf(t, f, bookingID)
		_, err := f.cmd.CreateBooking(ctx, createReq(carID, uuid.New(), 0, 2*time.Hour))
		assert.NoError(t, err)
	})
}

func mustCarOf(t *testing.T, f *fixture, bookingID uuid.UUID) uuid.UUID {
	t.Helper()
	snap, err := f.store.FindByID(context.Background(), bookingID)
	require.NoError(t, err)
	return snap.CarID
}
