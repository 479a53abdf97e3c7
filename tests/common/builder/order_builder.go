package builder

import (
	"account-shop/internal/domain/giftcard"
	"account-shop/internal/domain/order"
)

const (
	defaultBuyerID        = "200000000000000001"
	defaultBuyerName      = "buyer"
	defaultUnitPriceCents = int64(50)
)

// OrderBuilder assembles valid NewOrder input; tests mutate single fields to
// probe each validation rule.
type OrderBuilder struct {
	buyerID        string
	buyerName      string
	quantity       int
	unitPriceCents int64
	cardType       string
	cardCode       string
	policy         order.QuantityPolicy
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		buyerID:        defaultBuyerID,
		buyerName:      defaultBuyerName,
		quantity:       2,
		unitPriceCents: defaultUnitPriceCents,
		cardType:       "amazon",
		cardCode:       "ABCD1234EFGH",
		policy:         order.QuantityPolicy{Min: 2, Max: 100},
	}
}

func (b *OrderBuilder) WithBuyerID(id string) *OrderBuilder          { b.buyerID = id; return b }
func (b *OrderBuilder) WithQuantity(q int) *OrderBuilder             { b.quantity = q; return b }
func (b *OrderBuilder) WithUnitPriceCents(c int64) *OrderBuilder     { b.unitPriceCents = c; return b }
func (b *OrderBuilder) WithPolicy(p order.QuantityPolicy) *OrderBuilder { b.policy = p; return b }
func (b *OrderBuilder) WithCard(cardType, code string) *OrderBuilder {
	b.cardType = cardType
	b.cardCode = code
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	card, err := giftcard.NewCard(b.cardType, b.cardCode)
	if err != nil {
		return nil, err
	}
	return order.NewOrder(b.buyerID, b.buyerName, b.quantity, b.unitPriceCents, card, b.policy)
}
