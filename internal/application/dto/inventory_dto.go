package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRecordRequest body para POST /api/inventory. Quantity es
// firmada: positiva registra entrada, negativa retira (resuelto por FIFO si
// no viene lot_id).
type CreateInventoryRecordRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedBy string          `json:"updated_by,omitempty"`
	LotID     string          `json:"lot_id,omitempty"`
}

// InventoryRecordResponse una entrada del journal.
type InventoryRecordResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	LotID     *string         `json:"lot_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedBy string          `json:"updated_by"`
	Timestamp time.Time       `json:"timestamp"`
}

// LotAllocationResponse detalle por lote de un retiro (auditoría).
type LotAllocationResponse struct {
	LotID    string          `json:"lot_id"`
	Quantity decimal.Decimal `json:"quantity"`
}
