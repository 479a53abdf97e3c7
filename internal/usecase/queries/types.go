package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type OrderView struct {
	ID              uuid.UUID  `json:"id"`
	BuyerID         string     `json:"buyer_id"`
	BuyerName       string     `json:"buyer_name"`
	Quantity        int        `json:"quantity"`
	TotalPriceCents int64      `json:"total_price_cents"`
	CardType        string     `json:"card_type"`
	CardCode        string     `json:"-"` // operator-only, kept off the HTTP surface
	Status          string     `json:"status"`
	TicketChannelID string     `json:"ticket_channel_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type OrderListItem struct {
	ID              uuid.UUID `json:"id"`
	BuyerName       string    `json:"buyer_name"`
	Quantity        int       `json:"quantity"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// StockView reports how much inventory exists and how much of it is
// actually sellable right now.
type StockView struct {
	Total     int64 `json:"total"`
	Consumed  int64 `json:"consumed"`
	Reserved  int64 `json:"reserved"`
	Available int64 `json:"available"`
}

// CredentialView carries a delivered secret payload. Never logged.
type CredentialView struct {
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
}
