package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto del journal de inventario.
// Solo inserta y lee: los records nunca se actualizan ni borran.
type InventoryRecordRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	// ListByItem devuelve el historial del ítem ordenado por timestamp
	// descendente (lo más reciente primero).
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryRecord, error)
	// SumByItem calcula el stock actual: SUM(quantity) sobre el historial.
	// Siempre se computa, nunca se cachea, para que no pueda divergir.
	SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error)
}
