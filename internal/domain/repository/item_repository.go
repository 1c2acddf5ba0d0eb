package repository

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de ítems.
// Los Get devuelven (nil, nil) si no existe; el caso de uso decide el error.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
}
