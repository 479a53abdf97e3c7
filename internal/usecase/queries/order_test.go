//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"account-shop/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderViewRepo struct {
	gotBuyerID string
	gotLimit   int32
	items      []*queries.OrderListItem
}

func (r *stubOrderViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	return &queries.OrderView{ID: id}, nil
}

func (r *stubOrderViewRepo) FindRecentByBuyer(_ context.Context, buyerID string, limit int32) ([]*queries.OrderListItem, error) {
	r.gotBuyerID = buyerID
	r.gotLimit = limit
	return r.items, nil
}

func TestListRecentByBuyer(t *testing.T) {
	ctx := context.Background()

	t.Run("passes buyer and limit through", func(t *testing.T) {
		repo := &stubOrderViewRepo{items: []*queries.OrderListItem{
			{ID: uuid.New(), Quantity: 2, Status: "pending", CreatedAt: time.Now()},
		}}
		q := queries.NewOrderQueries(repo)

		items, err := q.ListRecentByBuyer(ctx, "200000000000000001", 5)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "200000000000000001", repo.gotBuyerID)
		assert.Equal(t, int32(5), repo.gotLimit)
	})

	t.Run("non-positive limit falls back to the default page size", func(t *testing.T) {
		repo := &stubOrderViewRepo{}
		q := queries.NewOrderQueries(repo)

		_, err := q.ListRecentByBuyer(ctx, "200000000000000001", 0)
		require.NoError(t, err)
		assert.Equal(t, int32(10), repo.gotLimit)

		_, err = q.ListRecentByBuyer(ctx, "200000000000000001", -3)
		require.NoError(t, err)
		assert.Equal(t, int32(10), repo.gotLimit)
	})
}
