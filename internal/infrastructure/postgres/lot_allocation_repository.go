package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

var _ repository.LotAllocationRepository = (*LotAllocationRepo)(nil)

// LotAllocationRepo implementación del rastro de auditoría por lote sobre
// PostgreSQL (usable con pool o tx).
type LotAllocationRepo struct {
	q Querier
}

// NewLotAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotAllocationRepository(q Querier) *LotAllocationRepo {
	return &LotAllocationRepo{q: q}
}

// Create persiste un par (lote, cantidad) de un retiro.
func (r *LotAllocationRepo) Create(ctx context.Context, a *entity.LotAllocation) error {
	query := `
		INSERT INTO lot_allocations (id, record_id, lot_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, a.ID, a.RecordID, a.LotID, a.Quantity, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert lot allocation: %w", err)
	}
	return nil
}

// ListByRecord devuelve el detalle por lote de un record del journal.
func (r *LotAllocationRepo) ListByRecord(ctx context.Context, recordID string) ([]*entity.LotAllocation, error) {
	query := `
		SELECT id, record_id, lot_id, quantity, created_at
		FROM lot_allocations WHERE record_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("list lot allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotAllocation
	for rows.Next() {
		var a entity.LotAllocation
		if err := rows.Scan(&a.ID, &a.RecordID, &a.LotID, &a.Quantity, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
