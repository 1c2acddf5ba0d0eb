package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases. Los campos de lote son
// opcionales: si purchase_type es "imported" o viene lot_number, se crea lote.
type CreatePurchaseRequest struct {
	ItemID            string          `json:"item_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	PurchaseType      string          `json:"purchase_type"`
	Supplier          string          `json:"supplier"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	CreatedBy         string          `json:"created_by,omitempty"`
	LotNumber         string          `json:"lot_number,omitempty"`
	ManufacturingDate *time.Time      `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
}

// PurchaseResponse representación HTTP de una compra (con su lote si lo generó).
type PurchaseResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	PurchaseType string          `json:"purchase_type"`
	Supplier     string          `json:"supplier"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	CreatedBy    string          `json:"created_by"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Lot          *LotResponse    `json:"lot,omitempty"`
}

// LotResponse representación HTTP de un lote.
type LotResponse struct {
	ID                string          `json:"id"`
	PurchaseID        string          `json:"purchase_id"`
	ItemID            string          `json:"item_id,omitempty"`
	LotNumber         string          `json:"lot_number"`
	ManufacturingDate *time.Time      `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
}
