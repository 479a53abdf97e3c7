package order

import (
	"errors"
	"time"

	"account-shop/internal/domain/giftcard"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
	ErrEmptyBuyer       = errors.New("buyer id cannot be empty")
	ErrAlreadyFinalized = errors.New("order is already in a terminal state")
)

// QuantityPolicy bounds a single purchase. Values come from configuration, not
// from the domain itself.
type QuantityPolicy struct {
	Min int
	Max int
}

func (p QuantityPolicy) Validate(quantity int) error {
	if quantity < p.Min || quantity > p.Max {
		return ErrInvalidQuantity
	}
	return nil
}

// Order is the buyer-facing unit of sale. Status moves pending→completed or
// pending→rejected exactly once; nothing mutates a terminal order.
type Order struct {
	id              uuid.UUID
	buyerID         string
	buyerName       string
	quantity        int
	totalPriceCents int64
	cardType        giftcard.CardType
	cardCode        string
	status          Status
	ticketChannelID string
	createdAt       time.Time
	completedAt     *time.Time
}

func NewOrder(
	buyerID, buyerName string,
	quantity int,
	unitPriceCents int64,
	card giftcard.Card,
	policy QuantityPolicy,
) (*Order, error) {
	if buyerID == "" {
		return nil, ErrEmptyBuyer
	}
	if err := policy.Validate(quantity); err != nil {
		return nil, err
	}
	if unitPriceCents < 0 {
		return nil, ErrInvalidUnitPrice
	}

	return &Order{
		id:              uuid.New(),
		buyerID:         buyerID,
		buyerName:       buyerName,
		quantity:        quantity,
		totalPriceCents: int64(quantity) * unitPriceCents,
		cardType:        card.Type(),
		cardCode:        card.Code(),
		status:          StatusPending,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	buyerID, buyerName string,
	quantity int,
	totalPriceCents int64,
	cardType giftcard.CardType,
	cardCode string,
	status Status,
	ticketChannelID string,
	createdAt time.Time,
	completedAt *time.Time,
) *Order {
	return &Order{
		id:              id,
		buyerID:         buyerID,
		buyerName:       buyerName,
		quantity:        quantity,
		totalPriceCents: totalPriceCents,
		cardType:        cardType,
		cardCode:        cardCode,
		status:          status,
		ticketChannelID: ticketChannelID,
		createdAt:       createdAt,
		completedAt:     completedAt,
	}
}

func (o *Order) Complete(now time.Time) error {
	if o.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	o.status = StatusCompleted
	o.completedAt = &now
	return nil
}

func (o *Order) Reject(now time.Time) error {
	if o.status.IsTerminal() {
		return ErrAlreadyFinalized
	}
	o.status = StatusRejected
	o.completedAt = &now
	return nil
}

func (o *Order) AttachTicketChannel(channelID string) {
	o.ticketChannelID = channelID
}

func (o *Order) IsPending() bool {
	return o.status == StatusPending
}

func (o *Order) ID() uuid.UUID               { return o.id }
func (o *Order) BuyerID() string             { return o.buyerID }
func (o *Order) BuyerName() string           { return o.buyerName }
func (o *Order) Quantity() int               { return o.quantity }
func (o *Order) TotalPriceCents() int64      { return o.totalPriceCents }
func (o *Order) CardType() giftcard.CardType { return o.cardType }

// CardCode is the buyer-submitted code the operator redeems by hand. It is
// persisted for verification, never logged, and never exposed over HTTP.
func (o *Order) CardCode() string { return o.cardCode }
func (o *Order) Status() Status              { return o.status }
func (o *Order) TicketChannelID() string     { return o.ticketChannelID }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) CompletedAt() *time.Time     { return o.completedAt }
