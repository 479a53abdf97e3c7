package response

import (
	"time"

	"account-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID              uuid.UUID  `json:"id"`
	BuyerID         string     `json:"buyerId"`
	BuyerName       string     `json:"buyerName"`
	Quantity        int        `json:"quantity"`
	TotalPriceCents int64      `json:"totalPriceCents"`
	CardType        string     `json:"cardType"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:              rm.ID,
		BuyerID:         rm.BuyerID,
		BuyerName:       rm.BuyerName,
		Quantity:        rm.Quantity,
		TotalPriceCents: rm.TotalPriceCents,
		CardType:        rm.CardType,
		Status:          rm.Status,
		CreatedAt:       rm.CreatedAt,
		CompletedAt:     rm.CompletedAt,
	}
}
