package readstore

import (
	"context"

	"carpool-api/internal/domain/fleet"
	"carpool-api/internal/infra"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchReadStore struct {
	pool *pgxpool.Pool
}

func NewBranchReadStore(pool *pgxpool.Pool) *BranchReadStore {
	return &BranchReadStore{pool: pool}
}

func (s *BranchReadStore) ListBranches(ctx context.Context) ([]fleet.Branch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, location FROM branches ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, infra.WrapPgErr("failed to query branches", err)
	}
	defer rows.Close()

	var out []fleet.Branch
	for rows.Next() {
		var b fleet.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Location); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan branch", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to read branches", err)
	}
	return out, nil
}
