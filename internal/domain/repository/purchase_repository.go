package repository

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// List filtra opcionalmente por ítem (itemID vacío = todas), orden por
	// fecha de compra descendente.
	List(ctx context.Context, itemID string, limit, offset int) ([]*entity.Purchase, error)
}
