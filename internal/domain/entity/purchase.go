package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de compra. Las compras importadas siempre generan lote.
const (
	PurchaseTypeDomestic = "domestic"
	PurchaseTypeImported = "imported"
)

// Purchase registra una recepción de mercancía. Inmutable después de creada.
// A lo sumo un lote asociado (1:1 opcional, vía lots.purchase_id).
type Purchase struct {
	ID           string
	ItemID       string
	Quantity     decimal.Decimal
	PurchaseType string // domestic | imported
	Supplier     string
	PricePerUnit decimal.Decimal
	CreatedBy    string
	PurchaseDate time.Time
}

// RequiresLot indica si la compra debe crear lote: tipo importado o número de
// lote provisto explícitamente.
func (p *Purchase) RequiresLot(explicitLotNumber string) bool {
	return p.PurchaseType == PurchaseTypeImported || explicitLotNumber != ""
}
