package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// Consumption es un par (lote, cantidad a deducir) dentro de un plan de
// asignación. Quantity es siempre positiva.
type Consumption struct {
	Lot      *entity.Lot
	Quantity decimal.Decimal
}

// PlanFIFO decide cuánto deducir de cada lote para cubrir un retiro de `need`
// unidades (servicio de dominio, sin efectos). Los lotes deben venir en orden
// FIFO (Seq ascendente) y con RemainingQuantity > 0; se recorren en ese orden
// consumiendo min(remaining, pendiente) de cada uno hasta cubrir el total.
//
// Si los lotes no alcanzan, devuelve InsufficientAggregateQuantityError con el
// faltante exacto y ningún plan: el caller no debe aplicar deducción parcial.
func PlanFIFO(itemID string, lots []*entity.Lot, need decimal.Decimal) ([]Consumption, error) {
	if !need.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	plan := make([]Consumption, 0, len(lots))
	pending := need
	for _, lot := range lots {
		if lot.IsDepleted() {
			continue
		}
		take := decimal.Min(lot.RemainingQuantity, pending)
		plan = append(plan, Consumption{Lot: lot, Quantity: take})
		pending = pending.Sub(take)
		if pending.IsZero() {
			return plan, nil
		}
	}

	return nil, &domain.InsufficientAggregateQuantityError{
		ItemID:    itemID,
		Requested: need,
		Available: need.Sub(pending),
	}
}

// TotalPlanned suma las cantidades de un plan. Para todo plan exitoso debe
// igualar el `need` solicitado (propiedad de conservación).
func TotalPlanned(plan []Consumption) decimal.Decimal {
	total := decimal.Zero
	for _, c := range plan {
		total = total.Add(c.Quantity)
	}
	return total
}
