package shared

import (
	"time"

	"account-shop/internal/domain/order"

	"github.com/google/uuid"
)

// Minimal snapshot for command read operations
type OrderSnapshot struct {
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

// CredentialSnapshot carries one deliverable secret. Keep it out of logs.
type CredentialSnapshot struct {
	AccountID uuid.UUID
	Email     string
	Password  string
}
