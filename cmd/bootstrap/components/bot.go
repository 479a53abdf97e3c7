package components

import (
	"context"

	"account-shop/internal/bot"
	"account-shop/internal/infra/rates"

	"go.uber.org/fx"
)

var BotModule = fx.Module("bot",
	fx.Provide(
		rates.NewClient,
		bot.New,
	),
	fx.Invoke(startBot),
)

func startBot(lc fx.Lifecycle, b *bot.Bot) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return b.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return b.Stop(ctx)
		},
	})
}
