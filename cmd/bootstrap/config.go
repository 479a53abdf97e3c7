package bootstrap

import (
	"account-shop/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.ShopConfig { return cfg.Shop },
		func(cfg config.Config) config.RatesConfig { return cfg.Rates },
	),
)
