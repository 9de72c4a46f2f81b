package components

import (
	"log/slog"

	"slotbooker/internal/infra/notify"
	"slotbooker/internal/pkg/clock"
	"slotbooker/internal/usecase/commands"
	"slotbooker/internal/usecase/queries"
	"slotbooker/internal/usecase/reserve"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reserve.NewEngine,
	fx.Annotate(
		func(logger *slog.Logger) *notify.LogNotifier {
			return notify.NewLogNotifier(logger)
		},
		fx.As(new(commands.Notifier)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSlotCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewSlotQueries,
		queries.NewBookingQueries,
	),
)
