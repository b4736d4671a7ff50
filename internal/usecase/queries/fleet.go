package queries

import (
	"context"

	"carpool-api/internal/pkg/errs"
	"carpool-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type FleetQueries interface {
	ListCarsByBranch(ctx context.Context, branchID uuid.UUID) ([]*CarView, error)
	ListBranches(ctx context.Context) ([]*BranchView, error)
}

type fleetQueriesImpl struct {
	fleet    shared.FleetReader
	branches shared.BranchReader
}

func NewFleetQueries(fleet shared.FleetReader, branches shared.BranchReader) FleetQueries {
	return &fleetQueriesImpl{fleet: fleet, branches: branches}
}

func (q *fleetQueriesImpl) ListCarsByBranch(ctx context.Context, branchID uuid.UUID) ([]*CarView, error) {
	cars, err := q.fleet.CarsByBranch(ctx, branchID)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	views := make([]*CarView, len(cars))
	for i, car := range cars {
		views[i] = &CarView{
			ID:       car.ID,
			BranchID: car.BranchID,
			Name:     car.Name,
			Plate:    car.Plate,
			Status:   car.Status.String(),
		}
	}
	return views, nil
}

func (q *fleetQueriesImpl) ListBranches(ctx context.Context) ([]*BranchView, error) {
	branches, err := q.branches.ListBranches(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	views := make([]*BranchView, len(branches))
	for i, b := range branches {
		views[i] = &BranchView{
			ID:       b.ID,
			Name:     b.Name,
			Location: b.Location,
		}
	}
	return views, nil
}
