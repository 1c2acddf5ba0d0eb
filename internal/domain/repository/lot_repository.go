package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia del sub-ledger de lotes.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	// GetForUpdate obtiene el lote bloqueando su fila (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	// ListAvailableByItem enumera los lotes del ítem en orden FIFO (seq ASC).
	// Con excludeEmpty se omiten los de remaining_quantity <= 0.
	ListAvailableByItem(ctx context.Context, itemID string, excludeEmpty bool) ([]*entity.Lot, error)
	// ListAvailableForUpdate enumera los lotes con cantidad positiva del ítem
	// en orden FIFO bloqueando todas las filas (FOR UPDATE). El orden estable
	// por seq evita deadlocks entre retiros concurrentes. Solo dentro de tx.
	ListAvailableForUpdate(ctx context.Context, itemID string) ([]*entity.Lot, error)
	// Decrement resta amount de remaining_quantity de forma atómica. Falla con
	// InsufficientLotQuantityError si amount > remaining_quantity. Es el único
	// mutador de la cantidad de un lote.
	Decrement(ctx context.Context, lotID string, amount decimal.Decimal) error
	// List lista lotes, opcionalmente filtrados por ítem (itemID vacío = todos).
	List(ctx context.Context, itemID string, limit, offset int) ([]*entity.Lot, error)
}
