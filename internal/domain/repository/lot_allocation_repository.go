package repository

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// LotAllocationRepository define el puerto del rastro de auditoría por lote.
type LotAllocationRepository interface {
	Create(ctx context.Context, alloc *entity.LotAllocation) error
	ListByRecord(ctx context.Context, recordID string) ([]*entity.LotAllocation, error)
}
