package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable
// con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra. Las compras son inmutables: no hay Update.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, item_id, quantity, purchase_type, supplier, price_per_unit, created_by, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ItemID, p.Quantity, p.PurchaseType, p.Supplier, p.PricePerUnit, p.CreatedBy, p.PurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `
		SELECT id, item_id, quantity, purchase_type, supplier, price_per_unit, created_by, purchase_date
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.ItemID, &p.Quantity, &p.PurchaseType, &p.Supplier, &p.PricePerUnit, &p.CreatedBy, &p.PurchaseDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// List lista compras, opcionalmente filtradas por ítem, las más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, itemID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, item_id, quantity, purchase_type, supplier, price_per_unit, created_by, purchase_date
		FROM purchases`
	args := []any{}
	pos := 1
	if itemID != "" {
		query += fmt.Sprintf(" WHERE item_id = $%d", pos)
		args = append(args, itemID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY purchase_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.ItemID, &p.Quantity, &p.PurchaseType, &p.Supplier,
			&p.PricePerUnit, &p.CreatedBy, &p.PurchaseDate); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
