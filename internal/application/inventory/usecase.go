package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/inventory"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// UseCase es el motor de asignación: registra eventos firmados de cantidad en
// el journal y decide qué lote(s) absorben un retiro cuando el caller no
// nombra uno. Todo el recorrido de asignación corre dentro de una transacción
// con bloqueo de filas (SELECT FOR UPDATE), así dos retiros concurrentes sobre
// los mismos lotes se serializan y remaining_quantity nunca queda negativo.
type UseCase struct {
	txRunner   TxRunner
	itemRepo   repository.ItemRepository
	lotRepo    repository.LotRepository
	recordRepo repository.InventoryRecordRepository
	allocRepo  repository.LotAllocationRepository
}

// NewUseCase construye el motor. Los repos sueltos se usan para lecturas
// fuera de transacción; las escrituras siempre van vía txRunner.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	allocRepo repository.LotAllocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		itemRepo:   itemRepo,
		lotRepo:    lotRepo,
		recordRepo: recordRepo,
		allocRepo:  allocRepo,
	}
}

// RecordInputDTO entrada para CreateInventoryRecord. Quantity es firmada;
// LotID opcional fuerza el retiro contra ese lote en vez de FIFO.
type RecordInputDTO struct {
	ItemID    string
	Quantity  decimal.Decimal
	LotID     string
	UpdatedBy string
}

// CreateInventoryRecord registra un evento de inventario:
//
//   - lote explícito + cantidad negativa: deduce abs(Quantity) de ese lote
//     (InsufficientLotQuantityError si no alcanza, aunque otros lotes pudieran
//     cubrirlo).
//   - lote explícito + cantidad positiva: entrada pura; el record referencia
//     el lote pero no lo muta (un lote nunca se recarga por esta vía).
//   - sin lote + cantidad positiva: entrada pura sin semántica de lotes.
//   - sin lote + cantidad negativa: recorrido FIFO sobre los lotes del ítem
//     (el más antiguo primero), todo o nada; si el total disponible no cubre
//     el retiro falla con InsufficientAggregateQuantityError y ningún lote
//     queda mutado.
//
// En los retiros se persiste un solo record por la operación completa
// (referenciando el primer lote drenado) más una fila de auditoría en
// lot_allocations por cada par (lote, cantidad) consumido; la suma de esas
// filas iguala exactamente abs(Quantity) del record (doble partida).
func (uc *UseCase) CreateInventoryRecord(ctx context.Context, input RecordInputDTO) (*entity.InventoryRecord, error) {
	if input.ItemID == "" || input.UpdatedBy == "" {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	now := time.Now()
	record := &entity.InventoryRecord{
		ID:        uuid.New().String(),
		ItemID:    input.ItemID,
		Quantity:  input.Quantity,
		UpdatedBy: input.UpdatedBy,
		Timestamp: now,
	}

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		recordRepo repository.InventoryRecordRepository,
		allocRepo repository.LotAllocationRepository,
	) error {
		if input.LotID != "" {
			return uc.applyExplicitLot(ctx, lotRepo, recordRepo, allocRepo, record, input, now)
		}
		if input.Quantity.IsNegative() {
			return uc.applyFIFO(ctx, lotRepo, recordRepo, allocRepo, record, input, now)
		}
		// Entrada pura: sin interacción con el ledger de lotes.
		return recordRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// applyExplicitLot maneja el record con lote nombrado. Bloquea la fila del
// lote; solo las cantidades negativas deducen (las positivas son aditivas y
// dejan el lote intacto).
func (uc *UseCase) applyExplicitLot(
	ctx context.Context,
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	allocRepo repository.LotAllocationRepository,
	record *entity.InventoryRecord,
	input RecordInputDTO,
	now time.Time,
) error {
	lot, err := lotRepo.GetForUpdate(ctx, input.LotID)
	if err != nil {
		return err
	}
	if lot == nil || lot.ItemID != input.ItemID {
		// Un lote de otro ítem no pertenece al historial de compras de este.
		return domain.ErrLotNotFound
	}
	record.LotID = &lot.ID

	if !input.Quantity.IsNegative() {
		return recordRepo.Create(ctx, record)
	}

	need := input.Quantity.Abs()
	if need.GreaterThan(lot.RemainingQuantity) {
		return &domain.InsufficientLotQuantityError{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Requested: need,
			Available: lot.RemainingQuantity,
		}
	}
	if err := lotRepo.Decrement(ctx, lot.ID, need); err != nil {
		return err
	}
	if err := recordRepo.Create(ctx, record); err != nil {
		return err
	}
	return allocRepo.Create(ctx, &entity.LotAllocation{
		ID:        uuid.New().String(),
		RecordID:  record.ID,
		LotID:     lot.ID,
		Quantity:  need,
		CreatedAt: now,
	})
}

// applyFIFO resuelve un retiro sin lote nombrado: bloquea todos los lotes
// disponibles del ítem en orden de creación, calcula el plan y lo aplica.
// El plan se calcula completo antes de tocar ningún lote; un faltante aborta
// la transacción entera.
func (uc *UseCase) applyFIFO(
	ctx context.Context,
	lotRepo repository.LotRepository,
	recordRepo repository.InventoryRecordRepository,
	allocRepo repository.LotAllocationRepository,
	record *entity.InventoryRecord,
	input RecordInputDTO,
	now time.Time,
) error {
	lots, err := lotRepo.ListAvailableForUpdate(ctx, input.ItemID)
	if err != nil {
		return err
	}
	plan, err := inventory.PlanFIFO(input.ItemID, lots, input.Quantity.Abs())
	if err != nil {
		return err
	}

	for _, c := range plan {
		if err := lotRepo.Decrement(ctx, c.Lot.ID, c.Quantity); err != nil {
			return err
		}
	}

	// El journal colapsa el retiro en un solo record, apuntando al primer
	// lote drenado; el detalle exacto queda en lot_allocations.
	record.LotID = &plan[0].Lot.ID
	if err := recordRepo.Create(ctx, record); err != nil {
		return err
	}
	for _, c := range plan {
		alloc := &entity.LotAllocation{
			ID:        uuid.New().String(),
			RecordID:  record.ID,
			LotID:     c.Lot.ID,
			Quantity:  c.Quantity,
			CreatedAt: now,
		}
		if err := allocRepo.Create(ctx, alloc); err != nil {
			return err
		}
	}
	return nil
}

// GetItemHistory devuelve el journal del ítem, lo más reciente primero.
func (uc *UseCase) GetItemHistory(ctx context.Context, itemID string) ([]*entity.InventoryRecord, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.recordRepo.ListByItem(ctx, itemID)
}

// GetCurrentQuantity calcula el stock actual del ítem como la suma de todas
// las cantidades de su journal.
func (uc *UseCase) GetCurrentQuantity(ctx context.Context, itemID string) (decimal.Decimal, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrItemNotFound
	}
	return uc.recordRepo.SumByItem(ctx, itemID)
}

// GetAvailableLots enumera los lotes del ítem en orden FIFO. Con excludeEmpty
// nunca incluye lotes con remaining_quantity <= 0.
func (uc *UseCase) GetAvailableLots(ctx context.Context, itemID string, excludeEmpty bool) ([]*entity.Lot, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.lotRepo.ListAvailableByItem(ctx, itemID, excludeEmpty)
}

// GetLot obtiene un lote por ID.
func (uc *UseCase) GetLot(ctx context.Context, lotID string) (*entity.Lot, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrLotNotFound
	}
	return lot, nil
}

// ListLots lista lotes, opcionalmente filtrados por ítem.
func (uc *UseCase) ListLots(ctx context.Context, itemID string, limit, offset int) ([]*entity.Lot, error) {
	return uc.lotRepo.List(ctx, itemID, limit, offset)
}

// GetRecordAllocations devuelve el detalle por lote de un retiro del journal
// (vacío para entradas puras).
func (uc *UseCase) GetRecordAllocations(ctx context.Context, recordID string) ([]*entity.LotAllocation, error) {
	return uc.allocRepo.ListByRecord(ctx, recordID)
}
