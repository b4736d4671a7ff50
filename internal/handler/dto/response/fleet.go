package response

import (
	"carpool-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CarResponse struct {
	ID       uuid.UUID `json:"id"`
	BranchID uuid.UUID `json:"branchId"`
	Name     string    `json:"name"`
	Plate    string    `json:"plate,omitempty"`
	Status   string    `json:"status"`
}

type BranchResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location,omitempty"`
}

func FromCarViews(rms []*queries.CarView) []*CarResponse {
	out := make([]*CarResponse, len(rms))
	for i, rm := range rms {
		out[i] = &CarResponse{
			ID:       rm.ID,
			BranchID: rm.BranchID,
			Name:     rm.Name,
			Plate:    rm.Plate,
			Status:   rm.Status,
		}
	}
	return out
}

func FromBranchViews(rms []*queries.BranchView) []*BranchResponse {
	out := make([]*BranchResponse, len(rms))
	for i, rm := range rms {
		out[i] = &BranchResponse{
			ID:       rm.ID,
			Name:     rm.Name,
			Location: rm.Location,
		}
	}
	return out
}
