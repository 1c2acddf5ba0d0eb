package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotAllocation es el rastro de auditoría por lote de un retiro: un par
// (lote, cantidad consumida) por cada lote tocado. El journal colapsa el
// retiro en un solo record; la suma de las allocations de ese record debe
// igualar exactamente el valor absoluto de su cantidad (doble partida).
type LotAllocation struct {
	ID        string
	RecordID  string
	LotID     string
	Quantity  decimal.Decimal // siempre positiva: lo deducido de ese lote
	CreatedAt time.Time
}
