package worker

import (
	"context"
	"log/slog"
	"time"

	"account-shop/internal/pkg/config"
	"account-shop/internal/usecase/commands"
)

// Sweeper periodically expires stale reservations so abandoned holds return
// to the sellable pool without operator action.
type Sweeper struct {
	sweep    commands.SweepCommands
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(sweep commands.SweepCommands, cfg config.ShopConfig, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: cfg.SweepInterval,
		logger:   logger,
	}
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("🧹 予約スイーパーを起動します", "interval", s.interval)
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("予約スイーパーを停止しました")
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// 起動直後に一度流す（再起動中に溜まった期限切れを即回収）
	s.sweepOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	if _, err := s.sweep.ExpireReservations(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("failed to expire reservations", "error", err)
	}
}
