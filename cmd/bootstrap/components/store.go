package components

import (
	"carpool-api/internal/infra/memstore"
	"carpool-api/internal/infra/readstore"
	"carpool-api/internal/infra/writerepo"
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/pkg/config"
	"carpool-api/internal/usecase/queries"
	"carpool-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
	),
)

// Stores bundles the port implementations for the selected driver so the
// usecase layer stays oblivious to which backend is running.
type Stores struct {
	fx.Out

	Reservations shared.ReservationStore
	Reader       queries.AvailabilityReader
	Fleet        shared.FleetReader
	Branches     shared.BranchReader
	Views        queries.BookingViewRepo
}

func NewStores(cfg config.Config, pool *pgxpool.Pool, clk clock.Clock) Stores {
	if cfg.Store.IsMemory() {
		mem := memstore.New(clk)
		return Stores{
			Reservations: mem,
			Reader:       mem,
			Fleet:        mem,
			Branches:     mem,
			Views:        mem.BookingViews(),
		}
	}

	write := writerepo.NewBookingRepository(pool, clk)
	return Stores{
		Reservations: write,
		Reader:       write,
		Fleet:        readstore.NewFleetReadStore(pool),
		Branches:     readstore.NewBranchReadStore(pool),
		Views:        readstore.NewBookingReadStore(pool),
	}
}
