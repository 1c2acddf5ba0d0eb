package http

import (
	"github.com/jhoicas/stackr-api/internal/application/dto"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

func toRecordResponse(r *entity.InventoryRecord) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		ID:        r.ID,
		ItemID:    r.ItemID,
		LotID:     r.LotID,
		Quantity:  r.Quantity,
		UpdatedBy: r.UpdatedBy,
		Timestamp: r.Timestamp,
	}
}

func toLotResponse(l *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:                l.ID,
		PurchaseID:        l.PurchaseID,
		ItemID:            l.ItemID,
		LotNumber:         l.LotNumber,
		ManufacturingDate: l.ManufacturingDate,
		ExpiryDate:        l.ExpiryDate,
		RemainingQuantity: l.RemainingQuantity,
	}
}

func toPurchaseResponse(p *entity.Purchase, lot *entity.Lot) dto.PurchaseResponse {
	out := dto.PurchaseResponse{
		ID:           p.ID,
		ItemID:       p.ItemID,
		Quantity:     p.Quantity,
		PurchaseType: p.PurchaseType,
		Supplier:     p.Supplier,
		PricePerUnit: p.PricePerUnit,
		CreatedBy:    p.CreatedBy,
		PurchaseDate: p.PurchaseDate,
	}
	if lot != nil {
		lr := toLotResponse(lot)
		out.Lot = &lr
	}
	return out
}
