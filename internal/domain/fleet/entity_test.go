//go:build unit

package fleet_test

import (
	"testing"

	"carpool-api/internal/domain/fleet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCar(t *testing.T) {
	branchID := uuid.New()

	tests := []struct {
		name    string
		carName string
		branch  uuid.UUID
		status  fleet.AdminStatus
		errIs   error
	}{
		{name: "valid car", carName: "Corolla 3", branch: branchID, status: fleet.StatusAvailable},
		{name: "name trimmed", carName: "  Corolla 3  ", branch: branchID, status: fleet.StatusAvailable},
		{name: "empty name", carName: "   ", branch: branchID, status: fleet.StatusAvailable, errIs: fleet.ErrEmptyCarName},
		{name: "missing branch", carName: "Corolla 3", branch: uuid.Nil, status: fleet.StatusAvailable, errIs: fleet.ErrEmptyBranchRef},
		{name: "unknown status", carName: "Corolla 3", branch: branchID, status: fleet.AdminStatus("scrapped"), errIs: fleet.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car, err := fleet.NewCar(uuid.New(), tt.branch, tt.carName, "XY-123", tt.status)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Corolla 3", car.Name())
			assert.Equal(t, tt.branch, car.BranchID())
		})
	}
}

func TestAdminStatusBookable(t *testing.T) {
	assert.True(t, fleet.StatusAvailable.Bookable())
	assert.False(t, fleet.StatusMaintenance.Bookable())
	assert.False(t, fleet.StatusRetired.Bookable())
}
