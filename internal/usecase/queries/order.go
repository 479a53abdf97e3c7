package queries

import (
	"context"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListRecentByBuyer(ctx context.Context, buyerID string, limit int) ([]*OrderListItem, error)
}

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindRecentByBuyer(ctx context.Context, buyerID string, limit int32) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *orderQueriesImpl) ListRecentByBuyer(ctx context.Context, buyerID string, limit int) ([]*OrderListItem, error) {
	if limit <= 0 {
		limit = 10
	}
	return q.repo.FindRecentByBuyer(ctx, buyerID, int32(limit))
}
