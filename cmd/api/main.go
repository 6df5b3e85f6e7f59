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

	"github.com/jhoicas/delivery-tax-api/internal/application/auth"
	"github.com/jhoicas/delivery-tax-api/internal/application/query"
	"github.com/jhoicas/delivery-tax-api/internal/application/usecase"
	"github.com/jhoicas/delivery-tax-api/internal/domain/repository"
	"github.com/jhoicas/delivery-tax-api/internal/domain/tax"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/delivery-tax-api/internal/infrastructure/pdf"
	"github.com/jhoicas/delivery-tax-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/delivery-tax-api/internal/interfaces/http"
	"github.com/jhoicas/delivery-tax-api/pkg/config"
	"github.com/jhoicas/delivery-tax-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Store: PostgreSQL si hay DATABASE_URL, en memoria si no.
	var orderRepo repository.OrderRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		repo := postgres.NewOrderRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("schema de órdenes")
		}
		orderRepo = repo
		log.Info().Msg("store PostgreSQL activo")
	} else {
		orderRepo = memory.NewOrderRepository()
		log.Info().Msg("store en memoria activo (sin DATABASE_URL)")
	}

	calculator := tax.NewCalculator(tax.NewResolver())
	orderUC := usecase.NewOrderUseCase(orderRepo, calculator, query.NewEngine())
	authUC := auth.NewUseCase(
		auth.Credential{
			Username:     cfg.Auth.Username,
			PasswordHash: cfg.Auth.PasswordHash,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Delivery Tax API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:             orderUC,
		AuthUC:              authUC,
		PDFGenerator:        infrapdf.NewOrdersReportGenerator(),
		JWTSecret:           cfg.JWT.Secret,
		ImportMaxConcurrent: cfg.Import.MaxConcurrent,
		ImportMaxFileSizeMB: cfg.Import.MaxFileSizeMB,
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
