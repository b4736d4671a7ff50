package components

import (
	"carpool-api/internal/pkg/clock"
	"carpool-api/internal/usecase/commands"
	"carpool-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func() queries.AdministrativePolicy {
		return queries.DefaultAdministrativePolicy
	},
	func() commands.CancelAuthorizer {
		return commands.OwnerOrAdmin{}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewFleetQueries,
	),
)
