package inventory

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// asignación: el recorrido FIFO completo (leer lotes, decidir, decrementar,
// journal) es una sola unidad; si fn falla no queda ninguna mutación visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		recordRepo repository.InventoryRecordRepository,
		allocRepo repository.LotAllocationRepository,
	) error) error
}
