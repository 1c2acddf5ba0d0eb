package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stackr-api/internal/application/dto"
	"github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/application/reporting"
	"github.com/jhoicas/stackr-api/internal/application/usecase"
	"github.com/jhoicas/stackr-api/internal/domain"
)

// ItemHandler maneja el catálogo de ítems y sus vistas derivadas (stock,
// historial, lotes, reporte).
type ItemHandler struct {
	itemUC   *usecase.ItemUseCase
	invUC    *inventory.UseCase
	reportUC *reporting.LotReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(itemUC *usecase.ItemUseCase, invUC *inventory.UseCase, reportUC *reporting.LotReportUseCase) *ItemHandler {
	return &ItemHandler{itemUC: itemUC, invUC: invUC, reportUC: reportUC}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, description"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.itemUC.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateItemName) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_ITEM_NAME", Message: "ya existe un ítem con ese nombre"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	items, err := h.itemUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.itemUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapItemError(c, err)
	}
	return c.JSON(item)
}

// GetStock godoc
// @Summary      Stock actual del ítem
// @Description  Suma de todas las cantidades firmadas del journal del ítem.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *ItemHandler) GetStock(c *fiber.Ctx) error {
	itemID := c.Params("id")
	qty, err := h.invUC.GetCurrentQuantity(c.Context(), itemID)
	if err != nil {
		return h.mapItemError(c, err)
	}
	return c.JSON(dto.ItemStockResponse{ItemID: itemID, CurrentQuantity: qty})
}

// GetHistory godoc
// @Summary      Historial de inventario del ítem
// @Description  Journal completo del ítem, lo más reciente primero.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {array}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/history [get]
func (h *ItemHandler) GetHistory(c *fiber.Ctx) error {
	records, err := h.invUC.GetItemHistory(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapItemError(c, err)
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return c.JSON(out)
}

// GetLots godoc
// @Summary      Lotes del ítem en orden FIFO
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true   "ID del ítem"
// @Param        exclude_empty  query  bool    false  "omitir lotes agotados"
// @Success      200  {array}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/lots [get]
func (h *ItemHandler) GetLots(c *fiber.Ctx) error {
	excludeEmpty := c.QueryBool("exclude_empty", false)
	lots, err := h.invUC.GetAvailableLots(c.Context(), c.Params("id"), excludeEmpty)
	if err != nil {
		return h.mapItemError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotResponse(lot))
	}
	return c.JSON(out)
}

// GetLotReport godoc
// @Summary      Reporte PDF de lotes del ítem
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/lots/report [get]
func (h *ItemHandler) GetLotReport(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.GenerateForItem(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapItemError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lot_report.pdf"`)
	return c.Send(pdfBytes)
}

func (h *ItemHandler) mapItemError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "el ítem no existe"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
