// Package writerepo holds the command-side PostgreSQL repositories.
// SQL is written by hand against pgx; no ORM.
package writerepo

import (
	"context"
	"time"

	"carpool-api/internal/domain/booking"
	"carpool-api/internal/infra"
	"carpool-api/internal/infra/db"
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
	clk  clock.Clock
}

func NewBookingRepository(pool *pgxpool.Pool, clk clock.Clock) *BookingRepository {
	return &BookingRepository{pool: pool, clk: clk}
}

// Insert admits a reservation only if no active reservation of the same
// car overlaps. The car row is locked with SELECT ... FOR UPDATE so the
// overlap check and the insert form one atomic unit per car; writers for
// other cars proceed in parallel, readers are never blocked. The
// bookings_no_overlap exclusion constraint backstops the same invariant
// at the storage layer (surfaces as 23P01 -> KindConflict).
func (r *BookingRepository) Insert(ctx context.Context, res *booking.Reservation) error {
	_, err := db.RunInTxWithRetry(ctx, r.pool, 3, func(tx pgx.Tx) (struct{}, error) {
		var zero struct{}

		var carID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM cars WHERE id = $1 FOR UPDATE`,
			res.CarID(),
		).Scan(&carID)
		if err != nil {
			return zero, infra.WrapPgErr("failed to lock car row", err)
		}

		var conflicting int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM bookings
			 WHERE car_id = $1
			   AND status = 'active'
			   AND tstzrange(start_at, end_at, '[)') && $2::tstzrange`,
			res.CarID(), res.Window().ToTstzrange(),
		).Scan(&conflicting)
		if err != nil {
			return zero, infra.WrapPgErr("failed to check overlap", err)
		}
		if conflicting > 0 {
			return zero, infra.WrapRepoErr(infra.KindConflict, "overlapping active reservation", nil)
		}

		d := res.Details()
		_, err = tx.Exec(ctx,
			`INSERT INTO bookings
			   (id, car_id, branch_id, user_id, start_at, end_at,
			    purpose, notes, from_location, to_location, status,
			    created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
			res.ID(), res.CarID(), res.BranchID(), res.UserID(),
			res.Window().Start(), res.Window().End(),
			d.Purpose, d.Notes, d.FromLocation, d.ToLocation,
			res.Status().String(), res.CreatedAt(),
		)
		if err != nil {
			return zero, infra.WrapPgErr("failed to insert booking", err)
		}
		return zero, nil
	})
	return err
}

// Cancel is idempotent: a repeat cancel matches the row but leaves it
// untouched, updated_at included; only an unknown ID reports
// KindNotFound. Rows are never deleted.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings
		 SET status = 'cancelled',
		     updated_at = CASE WHEN status = 'active' THEN $2 ELSE updated_at END
		 WHERE id = $1`,
		id, r.clk.Now(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "booking "+id.String(), nil)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	var (
		snap           shared.ReservationSnapshot
		startAt, endAt time.Time
		status         string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, car_id, user_id, start_at, end_at, status, created_at
		 FROM bookings WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.CarID, &snap.UserID, &startAt, &endAt, &status, &snap.CreatedAt)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find booking", err)
	}

	window, err := booking.NewWindow(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored window invalid", err)
	}
	snap.Window = window
	snap.Status = booking.Status(status)
	return &snap, nil
}

func (r *BookingRepository) ActiveOverlapping(ctx context.Context, carID uuid.UUID, window booking.Window) ([]*booking.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, car_id, branch_id, user_id, start_at, end_at,
		        purpose, notes, from_location, to_location, status,
		        created_at, updated_at
		 FROM bookings
		 WHERE car_id = $1
		   AND status = 'active'
		   AND tstzrange(start_at, end_at, '[)') && $2::tstzrange
		 ORDER BY start_at ASC, id ASC`,
		carID, window.ToTstzrange(),
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var out []*booking.Reservation
	for rows.Next() {
		res, scanErr := scanReservation(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan booking", scanErr)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to read overlapping bookings", err)
	}
	return out, nil
}

func scanReservation(rows pgx.Rows) (*booking.Reservation, error) {
	var (
		id, carID, branchID, userID              uuid.UUID
		startAt, endAt, createdAt, updatedAt     time.Time
		purpose, notes, fromLocation, toLocation string
		status                                   string
	)
	err := rows.Scan(&id, &carID, &branchID, &userID, &startAt, &endAt,
		&purpose, &notes, &fromLocation, &toLocation, &status,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewWindow(startAt, endAt)
	if err != nil {
		return nil, err
	}
	details := booking.NewTripDetails(purpose, notes, fromLocation, toLocation)
	return booking.ReconstructReservation(
		id, carID, branchID, userID, window, details,
		booking.Status(status), createdAt, updatedAt,
	), nil
}
