package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación del journal sobre PostgreSQL (usable con
// pool o tx). Solo INSERT y SELECT: las entradas nunca se mutan ni se borran.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

// Create persiste una entrada del journal.
func (r *InventoryRecordRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, item_id, lot_id, quantity, updated_by, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.ItemID, rec.LotID, rec.Quantity, rec.UpdatedBy, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial del ítem, lo más reciente primero.
func (r *InventoryRecordRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT id, item_id, lot_id, quantity, updated_by, timestamp
		FROM inventory_records WHERE item_id = $1
		ORDER BY timestamp DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.LotID, &rec.Quantity, &rec.UpdatedBy, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// SumByItem calcula el stock actual del ítem: SUM(quantity) sobre todo el
// historial, computado en cada lectura para que no pueda divergir del journal.
func (r *InventoryRecordRepo) SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_records WHERE item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory records: %w", err)
	}
	return sum, nil
}
