package components

import (
	"account-shop/internal/handler"
	"account-shop/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewStockHandler,
		api.NewOrderHandler,
	),
	fx.Invoke(handler.NewRouter),
)
