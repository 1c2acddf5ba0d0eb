package purchasing

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// TxRunner ejecuta la creación de compra + lote dentro de una transacción:
// o se insertan ambos o ninguno.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		lotRepo repository.LotRepository,
	) error) error
}
