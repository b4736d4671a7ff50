// Package readstore holds the query-side PostgreSQL repositories. They
// return denormalized view rows; the write side never depends on them.
package readstore

import (
	"context"

	"carpool-api/internal/infra"
	"carpool-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingViewSelect = `
	SELECT b.id, b.car_id, c.name, b.branch_id, br.name, b.user_id,
	       b.start_at, b.end_at,
	       b.purpose, b.notes, b.from_location, b.to_location,
	       b.status, b.created_at
	FROM bookings b
	JOIN cars c ON c.id = b.car_id
	JOIN branches br ON br.id = b.branch_id`

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	rows, err := s.pool.Query(ctx, bookingViewSelect+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query booking view", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, infra.WrapPgErr("failed to read booking view", err)
		}
		return nil, infra.WrapRepoErr(infra.KindNotFound, "booking "+id.String(), nil)
	}
	view, err := scanBookingView(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan booking view", err)
	}
	return view, nil
}

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	return s.list(ctx, bookingViewSelect+`
	WHERE b.user_id = $1
	ORDER BY b.start_at ASC, b.id ASC`, userID)
}

func (s *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	return s.list(ctx, bookingViewSelect+`
	ORDER BY b.start_at ASC, b.id ASC`)
}

func (s *BookingReadStore) list(ctx context.Context, sql string, args ...any) ([]*queries.BookingView, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query booking views", err)
	}
	defer rows.Close()

	var out []*queries.BookingView
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan booking view", scanErr)
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to read booking views", err)
	}
	return out, nil
}

func scanBookingView(rows pgx.Rows) (*queries.BookingView, error) {
	var v queries.BookingView
	err := rows.Scan(
		&v.ID, &v.CarID, &v.CarName, &v.BranchID, &v.BranchName, &v.UserID,
		&v.StartAt, &v.EndAt,
		&v.Purpose, &v.Notes, &v.FromLocation, &v.ToLocation,
		&v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
