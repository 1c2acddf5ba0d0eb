package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stackr-api/internal/application/auth"
	"github.com/jhoicas/stackr-api/internal/application/inventory"
	"github.com/jhoicas/stackr-api/internal/application/purchasing"
	"github.com/jhoicas/stackr-api/internal/application/reporting"
	"github.com/jhoicas/stackr-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stackr-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stackr-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stackr-api/internal/interfaces/http"
	"github.com/jhoicas/stackr-api/pkg/config"
	"github.com/jhoicas/stackr-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	recordRepo := postgres.NewInventoryRecordRepository(pool)
	allocRepo := postgres.NewLotAllocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := usecase.NewItemUseCase(itemRepo)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, lotRepo, recordRepo, allocRepo)
	purchaseUC := purchasing.NewUseCase(txRunner, itemRepo, purchaseRepo)
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reporting.NewLotReportUseCase(itemRepo, lotRepo, recordRepo, reportGenerator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stackr API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		DBPing:      pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
