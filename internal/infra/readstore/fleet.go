package readstore

import (
	"context"

	"carpool-api/internal/domain/fleet"
	"carpool-api/internal/infra"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FleetReadStore struct {
	pool *pgxpool.Pool
}

func NewFleetReadStore(pool *pgxpool.Pool) *FleetReadStore {
	return &FleetReadStore{pool: pool}
}

func (s *FleetReadStore) CarByID(ctx context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	var (
		car    shared.CarSnapshot
		status string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, branch_id, name, plate, status FROM cars WHERE id = $1`,
		id,
	).Scan(&car.ID, &car.BranchID, &car.Name, &car.Plate, &status)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find car", err)
	}
	car.Status = fleet.AdminStatus(status)
	return &car, nil
}

func (s *FleetReadStore) CarsByBranch(ctx context.Context, branchID uuid.UUID) ([]*shared.CarSnapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, branch_id, name, plate, status
		 FROM cars
		 WHERE branch_id = $1
		 ORDER BY name ASC, id ASC`,
		branchID,
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query cars", err)
	}
	defer rows.Close()

	var out []*shared.CarSnapshot
	for rows.Next() {
		var (
			car    shared.CarSnapshot
			status string
		)
		if err := rows.Scan(&car.ID, &car.BranchID, &car.Name, &car.Plate, &status); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan car", err)
		}
		car.Status = fleet.AdminStatus(status)
		out = append(out, &car)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to read cars", err)
	}
	return out, nil
}
