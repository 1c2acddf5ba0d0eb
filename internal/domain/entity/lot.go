package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot es un batch trazable de un ítem. RemainingQuantity arranca igual a la
// cantidad de la compra que lo originó y solo lo muta el motor de asignación.
// Invariante: RemainingQuantity >= 0 siempre (también respaldado por CHECK en DB).
//
// Seq es la clave FIFO: secuencia monótona de creación (BIGSERIAL). El orden de
// consumo es siempre por Seq ascendente, nunca por fecha de vencimiento.
type Lot struct {
	ID                string
	Seq               int64
	PurchaseID        string
	ItemID            string // desnormalizado vía JOIN con purchases
	LotNumber         string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	RemainingQuantity decimal.Decimal
}

// IsDepleted indica si el lote quedó lógicamente agotado. No se borra: queda
// para auditoría e historial.
func (l *Lot) IsDepleted() bool {
	return !l.RemainingQuantity.GreaterThan(decimal.Zero)
}

// DefaultLotNumber deriva el número de lote cuando no se provee uno:
// determinístico a partir de la identidad de la compra.
func DefaultLotNumber(purchaseID string) string {
	return "LOT-" + purchaseID
}
