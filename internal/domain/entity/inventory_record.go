package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord es una entrada del journal: hecho inmutable, append-only,
// con cantidad firmada (positiva = entrada, negativa = salida). El stock
// actual de un ítem se define como SUM(quantity) sobre todos sus records.
//
// LotID es opcional: los aumentos puros no tocan lotes; los retiros resueltos
// por FIFO referencian solo el primer lote consumido (el detalle por lote vive
// en lot_allocations).
type InventoryRecord struct {
	ID        string
	ItemID    string
	LotID     *string
	Quantity  decimal.Decimal
	UpdatedBy string
	Timestamp time.Time
}
