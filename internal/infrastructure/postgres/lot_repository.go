package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o
// tx). El item_id del lote se resuelve con JOIN a purchases: la pertenencia
// lote→ítem es vía la compra que lo originó.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `l.id, l.seq, l.purchase_id, p.item_id, l.lot_number, l.manufacturing_date, l.expiry_date, l.remaining_quantity`

// Create persiste un lote nuevo. seq lo asigna la secuencia de la tabla (la
// clave FIFO) y se devuelve en la entidad. Número de lote duplicado →
// ErrDuplicateLotNumber.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, purchase_id, lot_number, manufacturing_date, expiry_date, remaining_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		lot.ID, lot.PurchaseID, lot.LotNumber, lot.ManufacturingDate, lot.ExpiryDate, lot.RemainingQuantity,
	).Scan(&lot.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLotNumber
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots l JOIN purchases p ON p.id = l.purchase_id
		WHERE l.id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetForUpdate obtiene el lote bloqueando su fila (SELECT FOR UPDATE). Usar
// solo dentro de una transacción.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots l JOIN purchases p ON p.id = l.purchase_id
		WHERE l.id = $1
		FOR UPDATE OF l`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListAvailableByItem enumera los lotes del ítem en orden FIFO (seq ASC, la
// secuencia de creación; nunca por vencimiento). Con excludeEmpty se omiten
// los agotados.
func (r *LotRepo) ListAvailableByItem(ctx context.Context, itemID string, excludeEmpty bool) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots l JOIN purchases p ON p.id = l.purchase_id
		WHERE p.item_id = $1`
	if excludeEmpty {
		query += ` AND l.remaining_quantity > 0`
	}
	query += ` ORDER BY l.seq ASC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListAvailableForUpdate enumera los lotes con cantidad positiva del ítem en
// orden FIFO y bloquea todas las filas. El ORDER BY seq estable hace que dos
// retiros concurrentes adquieran los bloqueos en el mismo orden (sin
// deadlock). Solo dentro de una transacción.
func (r *LotRepo) ListAvailableForUpdate(ctx context.Context, itemID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots l JOIN purchases p ON p.id = l.purchase_id
		WHERE p.item_id = $1 AND l.remaining_quantity > 0
		ORDER BY l.seq ASC
		FOR UPDATE OF l`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list lots for update: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Decrement resta amount de remaining_quantity de forma atómica: el guard
// remaining_quantity >= amount en el propio UPDATE garantiza que el invariante
// de no-negatividad se cumple aunque la fila no estuviera bloqueada.
func (r *LotRepo) Decrement(ctx context.Context, lotID string, amount decimal.Decimal) error {
	query := `
		UPDATE lots SET remaining_quantity = remaining_quantity - $2
		WHERE id = $1 AND remaining_quantity >= $2`
	cmd, err := r.q.Exec(ctx, query, lotID, amount)
	if err != nil {
		return fmt.Errorf("decrement lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Cero filas: o el lote no existe o no alcanza. Releer para saber cuál.
		lot, err := r.GetByID(ctx, lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrLotNotFound
		}
		return &domain.InsufficientLotQuantityError{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Requested: amount,
			Available: lot.RemainingQuantity,
		}
	}
	return nil
}

// List lista lotes, opcionalmente filtrados por ítem, en orden de creación.
func (r *LotRepo) List(ctx context.Context, itemID string, limit, offset int) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots l JOIN purchases p ON p.id = l.purchase_id`
	args := []any{}
	pos := 1
	if itemID != "" {
		query += fmt.Sprintf(" WHERE p.item_id = $%d", pos)
		args = append(args, itemID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY l.seq ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(&l.ID, &l.Seq, &l.PurchaseID, &l.ItemID, &l.LotNumber,
		&l.ManufacturingDate, &l.ExpiryDate, &l.RemainingQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) scanAll(rows pgx.Rows) ([]*entity.Lot, error) {
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.Seq, &l.PurchaseID, &l.ItemID, &l.LotNumber,
			&l.ManufacturingDate, &l.ExpiryDate, &l.RemainingQuantity); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
