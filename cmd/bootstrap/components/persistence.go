package components

import (
	"account-shop/internal/infra/db"
	"account-shop/internal/infra/readstore"
	"account-shop/internal/infra/uow"
	"account-shop/internal/usecase/queries"
	"account-shop/internal/usecase/shared"

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
		// Order read side
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		// Stock read side
		fx.Annotate(
			readstore.NewStockReadStore,
			fx.As(new(queries.StockViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
