package components

import (
	"cinebook/internal/domain/payment"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/config"
	"cinebook/internal/usecase"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		payment.NewLocalAuthorizer,
		fx.As(new(payment.Authorizer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingCommands(
	uow shared.UnitOfWork,
	views commands.BookingViewSource,
	authorizer payment.Authorizer,
	clk clock.Clock,
	cfg config.Config,
) (commands.BookingCommands, error) {
	return commands.NewBookingCommands(uow, views, authorizer, clk, cfg.Booking.HoldDuration)
}
