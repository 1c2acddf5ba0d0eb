package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stackr-api/internal/application/auth"
	"github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/application/purchasing"
	"github.com/jhoicas/stackr-api/internal/application/reporting"
	"github.com/jhoicas/stackr-api/internal/application/usecase"
	"github.com/jhoicas/stackr-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	InventoryUC *inventory.UseCase
	PurchaseUC  *purchasing.UseCase
	ReportUC    *reporting.LotReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	// DBPing verifica la conexión a la base (pool.Ping); lo usa /health.
	DBPing func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.DBPing != nil {
			if err := deps.DBPing(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Items (protegido). Crear ítems es tarea del admin; el resto lo puede
	// consultar cualquier rol.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.InventoryUC, deps.ReportUC)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Get("/", anyRole, itemHandler.List)
	items.Get("/:id", anyRole, itemHandler.GetByID)
	items.Get("/:id/stock", anyRole, itemHandler.GetStock)
	items.Get("/:id/history", anyRole, itemHandler.GetHistory)
	items.Get("/:id/lots", anyRole, itemHandler.GetLots)
	items.Get("/:id/lots/report", anyRole, itemHandler.GetLotReport)

	// Inventory journal (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", anyRole, inventoryHandler.CreateRecord)
	invGroup.Get("/:id/allocations", anyRole, inventoryHandler.GetAllocations)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", anyRole, purchaseHandler.Create)
	purchases.Get("/", anyRole, purchaseHandler.List)
	purchases.Get("/:id", anyRole, purchaseHandler.GetByID)

	// Lots (protegido, solo lectura)
	lots := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.InventoryUC)
	lots.Get("/", anyRole, lotHandler.List)
	lots.Get("/:id", anyRole, lotHandler.GetByID)
}
