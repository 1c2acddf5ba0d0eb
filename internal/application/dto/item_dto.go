package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ItemResponse representación HTTP de un ítem.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemStockResponse stock actual de un ítem (SUM del journal).
type ItemStockResponse struct {
	ItemID          string          `json:"item_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
}
