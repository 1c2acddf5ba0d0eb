package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stackr-api/internal/application/dto"
	"github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del journal de inventario
// (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateRecord godoc
// @Summary      Registrar evento de inventario
// @Description  Cantidad positiva registra entrada; negativa retira stock.
//
//	Con lot_id la deducción va contra ese lote; sin lot_id los retiros se
//	resuelven por FIFO sobre los lotes del ítem (todo o nada).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRecordRequest  true  "item_id, quantity (firmada), lot_id opcional"
// @Success      201   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateRecord(c *fiber.Ctx) error {
	var in dto.CreateInventoryRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El actor del evento: el campo del body manda, con fallback al usuario
	// autenticado del token.
	updatedBy := in.UpdatedBy
	if updatedBy == "" {
		updatedBy = GetUserID(c)
	}
	record, err := h.uc.CreateInventoryRecord(c.Context(), inventory.RecordInputDTO{
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		LotID:     in.LotID,
		UpdatedBy: updatedBy,
	})
	if err != nil {
		return h.mapRecordError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecordResponse(record))
}

// GetAllocations godoc
// @Summary      Detalle por lote de un record del journal
// @Description  Auditoría del retiro: un par (lote, cantidad) por cada lote
//
//	consumido. Vacío para entradas puras.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del record"
// @Success      200  {array}  dto.LotAllocationResponse
// @Router       /api/inventory/{id}/allocations [get]
func (h *InventoryHandler) GetAllocations(c *fiber.Ctx) error {
	allocs, err := h.uc.GetRecordAllocations(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LotAllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, dto.LotAllocationResponse{LotID: a.LotID, Quantity: a.Quantity})
	}
	return c.JSON(out)
}

// mapRecordError traduce los errores del motor de asignación a HTTP. Los
// faltantes de stock van con las cantidades exactas en el mensaje para que el
// caller pueda decidir sin otra consulta.
func (h *InventoryHandler) mapRecordError(c *fiber.Ctx, err error) error {
	var lotErr *domain.InsufficientLotQuantityError
	if errors.As(err, &lotErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_LOT_QUANTITY",
			Message: fmt.Sprintf("lote %s: solicitado %s, disponible %s",
				lotErr.LotNumber, lotErr.Requested.String(), lotErr.Available.String()),
		})
	}
	var aggErr *domain.InsufficientAggregateQuantityError
	if errors.As(err, &aggErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK",
			Message: fmt.Sprintf("solicitado %s, disponible %s (faltan %s)",
				aggErr.Requested.String(), aggErr.Available.String(), aggErr.Shortfall().String()),
		})
	}
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "el ítem no existe"})
	case errors.Is(err, domain.ErrLotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOT_NOT_FOUND", Message: "el lote no existe o no pertenece al ítem"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
