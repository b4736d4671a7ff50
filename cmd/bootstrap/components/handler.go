package components

import (
	"carpool-api/internal/handler"
	"carpool-api/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewFleetHandler,
	),
	fx.Invoke(handler.NewRouter),
)
