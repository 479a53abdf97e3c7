package queries

import (
	"context"
	"time"

	"account-shop/internal/pkg/clock"
)

type StockQueries interface {
	Current(ctx context.Context) (*StockView, error)
}

type StockViewRepo interface {
	Counts(ctx context.Context, now time.Time) (*StockView, error)
}

type stockQueriesImpl struct {
	repo  StockViewRepo
	clock clock.Clock
}

func NewStockQueries(repo StockViewRepo, clk clock.Clock) StockQueries {
	return &stockQueriesImpl{repo: repo, clock: clk}
}

func (q *stockQueriesImpl) Current(ctx context.Context) (*StockView, error) {
	return q.repo.Counts(ctx, q.clock.Now())
}
