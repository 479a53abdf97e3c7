// Package fake provides an in-memory UnitOfWork with transactional rollback
// semantics, for exercising command usecases without Postgres. The locking
// behavior of the real store (SKIP LOCKED row claims) collapses to sequential
// execution here; concurrency itself is covered by the e2e suite.
package fake

import (
	"context"
	"sort"
	"time"

	"account-shop/internal/domain/account"
	"account-shop/internal/domain/order"
	"account-shop/internal/domain/reservation"
	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRow struct {
	ID              uuid.UUID
	BuyerID         string
	BuyerName       string
	Quantity        int
	TotalPriceCents int64
	CardType        string
	CardCode        string
	Status          order.Status
	TicketChannelID string
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

type AccountRow struct {
	ID         uuid.UUID
	Email      string
	Password   string
	Consumed   bool
	ConsumedBy string
	CreatedAt  time.Time
}

type ReservationRow struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	AccountIDs []uuid.UUID
	Status     reservation.Status
	ReservedAt time.Time
	ExpiresAt  time.Time
}

type state struct {
	orders       map[uuid.UUID]*OrderRow
	accounts     []*AccountRow
	reservations map[uuid.UUID]*ReservationRow
}

func (s *state) clone() *state {
	c := &state{
		orders:       make(map[uuid.UUID]*OrderRow, len(s.orders)),
		accounts:     make([]*AccountRow, len(s.accounts)),
		reservations: make(map[uuid.UUID]*ReservationRow, len(s.reservations)),
	}
	for id, row := range s.orders {
		cp := *row
		c.orders[id] = &cp
	}
	for i, row := range s.accounts {
		cp := *row
		c.accounts[i] = &cp
	}
	for id, row := range s.reservations {
		cp := *row
		cp.AccountIDs = append([]uuid.UUID(nil), row.AccountIDs...)
		c.reservations[id] = &cp
	}
	return c
}

// UoW is the fake. Seed it with SeedAccounts, run commands against it, then
// assert on Orders/Reservations/AccountRows.
type UoW struct {
	clock clock.Clock
	state *state
}

func NewUoW(clk clock.Clock) *UoW {
	return &UoW{
		clock: clk,
		state: &state{
			orders:       make(map[uuid.UUID]*OrderRow),
			reservations: make(map[uuid.UUID]*ReservationRow),
		},
	}
}

func (u *UoW) SeedAccounts(n int, emailPrefix string) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		row := &AccountRow{
			ID:        uuid.New(),
			Email:     emailPrefix + "-" + uuid.NewString() + "@example.com",
			Password:  "pw",
			CreatedAt: u.clock.Now().Add(time.Duration(i) * time.Millisecond),
		}
		u.state.accounts = append(u.state.accounts, row)
		ids[i] = row.ID
	}
	return ids
}

func (u *UoW) Order(id uuid.UUID) *OrderRow { return u.state.orders[id] }

func (u *UoW) OrderCount() int { return len(u.state.orders) }

func (u *UoW) ReservationByOrder(orderID uuid.UUID) *ReservationRow {
	for _, row := range u.state.reservations {
		if row.OrderID == orderID {
			return row
		}
	}
	return nil
}

func (u *UoW) ConsumedCount() int {
	n := 0
	for _, row := range u.state.accounts {
		if row.Consumed {
			n++
		}
	}
	return n
}

func (u *UoW) AccountRows() []*AccountRow { return u.state.accounts }

// Within snapshots the state and restores it when fn fails, mirroring a
// rolled-back transaction.
func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	snapshot := u.state.clone()
	if err := fn(ctx, &fakeTx{uow: u}); err != nil {
		u.state = snapshot
		return err
	}
	return nil
}

type fakeTx struct {
	uow *UoW
}

func (t *fakeTx) Orders() shared.OrderRepository             { return &fakeOrders{uow: t.uow} }
func (t *fakeTx) Accounts() shared.AccountRepository         { return &fakeAccounts{uow: t.uow} }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservations{uow: t.uow} }
func (t *fakeTx) Reads() shared.CommandReads                 { return &fakeReads{uow: t.uow} }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeOrders struct {
	uow *UoW
}

func (r *fakeOrders) Create(_ context.Context, o *order.Order) error {
	r.uow.state.orders[o.ID()] = &OrderRow{
		ID:              o.ID(),
		BuyerID:         o.BuyerID(),
		BuyerName:       o.BuyerName(),
		Quantity:        o.Quantity(),
		TotalPriceCents: o.TotalPriceCents(),
		CardType:        o.CardType().String(),
		CardCode:        o.CardCode(),
		Status:          o.Status(),
		TicketChannelID: o.TicketChannelID(),
		CreatedAt:       r.uow.clock.Now(),
	}
	return nil
}

func (r *fakeOrders) SetStatus(_ context.Context, id uuid.UUID, status order.Status, completedAt *time.Time) error {
	row, ok := r.uow.state.orders[id]
	if !ok || row.Status != order.StatusPending {
		return infra.WrapRepoErr("order not pending", nil, infra.KindConflict)
	}
	row.Status = status
	row.CompletedAt = completedAt
	return nil
}

func (r *fakeOrders) AttachTicketChannel(_ context.Context, id uuid.UUID, channelID string) error {
	row, ok := r.uow.state.orders[id]
	if !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	row.TicketChannelID = channelID
	return nil
}

type fakeAccounts struct {
	uow *UoW
}

func (r *fakeAccounts) Insert(_ context.Context, a *account.Account) error {
	for _, row := range r.uow.state.accounts {
		if row.Email == a.Email() {
			return infra.WrapRepoErr("account already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.uow.state.accounts = append(r.uow.state.accounts, &AccountRow{
		ID:        a.ID(),
		Email:     a.Email(),
		Password:  a.Password(),
		CreatedAt: r.uow.clock.Now(),
	})
	return nil
}

func (r *fakeAccounts) LockAvailable(_ context.Context, limit int) ([]uuid.UUID, error) {
	now := r.uow.clock.Now()

	held := make(map[uuid.UUID]bool)
	for _, res := range r.uow.state.reservations {
		if res.Status == reservation.StatusActive && res.ExpiresAt.After(now) {
			for _, id := range res.AccountIDs {
				held[id] = true
			}
		}
	}

	candidates := make([]*AccountRow, 0, len(r.uow.state.accounts))
	for _, row := range r.uow.state.accounts {
		if !row.Consumed && !held[row.ID] {
			candidates = append(candidates, row)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	ids := make([]uuid.UUID, len(candidates))
	for i, row := range candidates {
		ids[i] = row.ID
	}
	return ids, nil
}

func (r *fakeAccounts) MarkConsumed(_ context.Context, ids []uuid.UUID, buyerID string) (int64, error) {
	idSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var flipped int64
	for _, row := range r.uow.state.accounts {
		if idSet[row.ID] && !row.Consumed {
			row.Consumed = true
			row.ConsumedBy = buyerID
			flipped++
		}
	}
	return flipped, nil
}

type fakeReservations struct {
	uow *UoW
}

func (r *fakeReservations) Create(_ context.Context, res *reservation.Reservation) error {
	r.uow.state.reservations[res.ID()] = &ReservationRow{
		ID:         res.ID(),
		OrderID:    res.OrderID(),
		AccountIDs: append([]uuid.UUID(nil), res.AccountIDs()...),
		Status:     res.Status(),
		ReservedAt: res.ReservedAt(),
		ExpiresAt:  res.ExpiresAt(),
	}
	return nil
}

func (r *fakeReservations) FindActiveByOrder(_ context.Context, orderID uuid.UUID) (*reservation.Reservation, error) {
	for _, row := range r.uow.state.reservations {
		if row.OrderID == orderID && row.Status == reservation.StatusActive {
			return reservation.ReconstructReservation(
				row.ID, row.OrderID,
				append([]uuid.UUID(nil), row.AccountIDs...),
				row.Status, row.ReservedAt, row.ExpiresAt,
			), nil
		}
	}
	return nil, infra.WrapRepoErr("active reservation not found", nil, infra.KindNotFound)
}

func (r *fakeReservations) SetStatus(_ context.Context, id uuid.UUID, status reservation.Status) error {
	row, ok := r.uow.state.reservations[id]
	if !ok || row.Status != reservation.StatusActive {
		return infra.WrapRepoErr("reservation not active", nil, infra.KindConflict)
	}
	row.Status = status
	return nil
}

func (r *fakeReservations) ExpireStale(_ context.Context) (int64, error) {
	now := r.uow.clock.Now()
	var expired int64
	for _, row := range r.uow.state.reservations {
		if row.Status == reservation.StatusActive && row.ExpiresAt.Before(now) {
			row.Status = reservation.StatusExpired
			expired++
		}
	}
	return expired, nil
}

type fakeReads struct {
	uow *UoW
}

func (r *fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	row, ok := r.uow.state.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return &shared.OrderSnapshot{
		ID:              row.ID,
		BuyerID:         row.BuyerID,
		BuyerName:       row.BuyerName,
		Quantity:        row.Quantity,
		TotalPriceCents: row.TotalPriceCents,
		CardType:        row.CardType,
		CardCode:        row.CardCode,
		Status:          row.Status,
		TicketChannelID: row.TicketChannelID,
		CreatedAt:       row.CreatedAt,
		CompletedAt:     row.CompletedAt,
	}, nil
}

func (r *fakeReads) CredentialsByIDs(_ context.Context, ids []uuid.UUID) ([]*shared.CredentialSnapshot, error) {
	byID := make(map[uuid.UUID]*AccountRow, len(r.uow.state.accounts))
	for _, row := range r.uow.state.accounts {
		byID[row.ID] = row
	}

	result := make([]*shared.CredentialSnapshot, 0, len(ids))
	for _, id := range ids {
		row, ok := byID[id]
		if !ok {
			return nil, infra.WrapRepoErr("some accounts missing", nil, infra.KindNotFound)
		}
		result = append(result, &shared.CredentialSnapshot{
			AccountID: row.ID,
			Email:     row.Email,
			Password:  row.Password,
		})
	}
	return result, nil
}
