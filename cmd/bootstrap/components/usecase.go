package components

import (
	"account-shop/internal/pkg/clock"
	"account-shop/internal/usecase/commands"
	"account-shop/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
	),
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPurchaseUseCase,
		commands.NewApprovalUseCase,
		commands.NewInventoryUseCase,
		commands.NewSweepUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewStockQueries,
	),
)
