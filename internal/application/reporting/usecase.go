package reporting

import (
	"context"

	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// LotReportUseCase arma el reporte de lotes de un ítem: todos sus lotes
// (incluidos los agotados, que quedan para auditoría) más el stock actual
// derivado del journal.
type LotReportUseCase struct {
	itemRepo   repository.ItemRepository
	lotRepo    repository.LotRepository
	recordRepo repository.InventoryRecordRepository
	generator  LotReportGenerator
}

// NewLotReportUseCase construye el caso de uso.
func NewLotReportUseCase(
	itemRepo repository.ItemRepository,
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	generator LotReportGenerator,
) *LotReportUseCase {
	return &LotReportUseCase{itemRepo: itemRepo, lotRepo: lotRepo, recordRepo: recordRepo, generator: generator}
}

// GenerateForItem genera el PDF del reporte de lotes del ítem.
func (uc *LotReportUseCase) GenerateForItem(ctx context.Context, itemID string) ([]byte, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	lots, err := uc.lotRepo.ListAvailableByItem(ctx, itemID, false)
	if err != nil {
		return nil, err
	}
	stock, err := uc.recordRepo.SumByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateLotReport(ctx, item, lots, stock)
}
