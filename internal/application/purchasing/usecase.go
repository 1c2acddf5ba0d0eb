package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stackr-api/internal/domain"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
	"github.com/jhoicas/stackr-api/internal/domain/repository"
)

// UseCase registra compras y, cuando corresponde, siembra el lote asociado.
// Una compra NO genera entrada en el journal: la recepción y el
// reconocimiento en stock son pasos separados a propósito (el stock se
// reconoce solo con un inventory record explícito).
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	purchaseRepo repository.PurchaseRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, purchaseRepo repository.PurchaseRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, purchaseRepo: purchaseRepo}
}

// PurchaseInputDTO entrada para CreatePurchase. LotNumber y las fechas son
// opcionales; un LotNumber explícito fuerza la creación de lote aunque la
// compra sea doméstica.
type PurchaseInputDTO struct {
	ItemID            string
	Quantity          decimal.Decimal
	PurchaseType      string
	Supplier          string
	PricePerUnit      decimal.Decimal
	CreatedBy         string
	LotNumber         string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
}

// CreatePurchase crea la compra y, si el tipo es imported o vino lot_number,
// el lote con remaining_quantity igual a la cantidad comprada, todo en la
// misma transacción. Número de lote por defecto: LOT-<purchaseID>.
func (uc *UseCase) CreatePurchase(ctx context.Context, input PurchaseInputDTO) (*entity.Purchase, *entity.Lot, error) {
	if input.ItemID == "" || input.Supplier == "" || input.CreatedBy == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.PurchaseType != entity.PurchaseTypeDomestic && input.PurchaseType != entity.PurchaseTypeImported {
		return nil, nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) || input.PricePerUnit.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrItemNotFound
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		ItemID:       input.ItemID,
		Quantity:     input.Quantity,
		PurchaseType: input.PurchaseType,
		Supplier:     input.Supplier,
		PricePerUnit: input.PricePerUnit,
		CreatedBy:    input.CreatedBy,
		PurchaseDate: now,
	}

	var lot *entity.Lot
	if purchase.RequiresLot(input.LotNumber) {
		lotNumber := input.LotNumber
		if lotNumber == "" {
			lotNumber = entity.DefaultLotNumber(purchase.ID)
		}
		lot = &entity.Lot{
			ID:                uuid.New().String(),
			PurchaseID:        purchase.ID,
			ItemID:            purchase.ItemID,
			LotNumber:         lotNumber,
			ManufacturingDate: input.ManufacturingDate,
			ExpiryDate:        input.ExpiryDate,
			RemainingQuantity: input.Quantity,
		}
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		lotRepo repository.LotRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		if lot != nil {
			return lotRepo.Create(ctx, lot)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return purchase, lot, nil
}

// GetPurchase obtiene una compra por ID.
func (uc *UseCase) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListPurchases lista compras, opcionalmente filtradas por ítem.
func (uc *UseCase) ListPurchases(ctx context.Context, itemID string, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.List(ctx, itemID, limit, offset)
}
