package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/application/purchasing"
	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and purchasing.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Si fn
// falla no se persiste nada (Rollback); los conflictos de bloqueo se mapean a
// ErrConcurrencyConflict para que el caller sepa que puede reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción para el motor de asignación: repos de lotes,
// journal y auditoría atados a la misma tx; Commit o Rollback al final.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	allocRepo repository.LotAllocationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	recordRepo := NewInventoryRecordRepository(tx)
	allocRepo := NewLotAllocationRepository(tx)

	if err := fn(lotRepo, recordRepo, allocRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunPurchase inicia una transacción para compra + lote (CreatePurchase).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	lotRepo repository.LotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRepository(tx)
	lotRepo := NewLotRepository(tx)

	if err := fn(purchaseRepo, lotRepo); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func mapTxError(err error) error {
	if isConcurrencyFailure(err) {
		return domain.ErrConcurrencyConflict
	}
	return err
}
