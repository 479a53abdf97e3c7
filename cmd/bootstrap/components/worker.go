package components

import (
	"context"
	"log/slog"

	"account-shop/internal/pkg/config"
	"account-shop/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewSweeper,
	),
	fx.Invoke(startSweeper),
)

func startSweeper(lc fx.Lifecycle, s *worker.Sweeper, cfg config.Config, logger *slog.Logger) {
	if !cfg.Shop.SweepEnabled {
		logger.Info("予約スイーパーは無効化されています")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			s.Stop()
			return nil
		},
	})
}
