package response

import (
	"time"

	"carpool-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	CarID        uuid.UUID `json:"carId"`
	CarName      string    `json:"carName"`
	BranchID     uuid.UUID `json:"branchId"`
	BranchName   string    `json:"branchName"`
	UserID       uuid.UUID `json:"userId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Purpose      string    `json:"purpose,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	FromLocation string    `json:"fromLocation,omitempty"`
	ToLocation   string    `json:"toLocation,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:           rm.ID,
		CarID:        rm.CarID,
		CarName:      rm.CarName,
		BranchID:     rm.BranchID,
		BranchName:   rm.BranchName,
		UserID:       rm.UserID,
		StartAt:      rm.StartAt,
		EndAt:        rm.EndAt,
		Purpose:      rm.Purpose,
		Notes:        rm.Notes,
		FromLocation: rm.FromLocation,
		ToLocation:   rm.ToLocation,
		Status:       rm.Status,
		CreatedAt:    rm.CreatedAt,
	}
}

func FromBookingViews(rms []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(rms))
	for i, rm := range rms {
		out[i] = FromBookingView(rm)
	}
	return out
}

// AvailabilityResponse is keyed by car ID; uuid.UUID marshals map keys
// as their canonical string form.
type AvailabilityResponse map[uuid.UUID]queries.Verdict
