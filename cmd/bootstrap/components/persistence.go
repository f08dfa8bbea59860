package components

import (
	"cinebook/internal/infra/db"
	"cinebook/internal/infra/readstore"
	"cinebook/internal/infra/uow"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Booking read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(commands.BookingViewSource)),
		),
		// User read side
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(commands.UserAuthSource)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
