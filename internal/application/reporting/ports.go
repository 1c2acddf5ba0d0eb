package reporting

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// LotReportGenerator genera la representación imprimible del reporte de
// trazabilidad de lotes de un ítem.
type LotReportGenerator interface {
	GenerateLotReport(ctx context.Context, item *entity.Item, lots []*entity.Lot, currentStock decimal.Decimal) ([]byte, error)
}
