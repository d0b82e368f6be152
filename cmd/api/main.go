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
	"github.com/jhoicas/Liquidacion-api/internal/application/fees"
	"github.com/jhoicas/Liquidacion-api/internal/application/sales"
	appsettlement "github.com/jhoicas/Liquidacion-api/internal/application/settlement"
	"github.com/jhoicas/Liquidacion-api/internal/domain/aggregation"
	"github.com/jhoicas/Liquidacion-api/internal/domain/settlement"
	"github.com/jhoicas/Liquidacion-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Liquidacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Liquidacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Liquidacion-api/internal/interfaces/http"
	"github.com/jhoicas/Liquidacion-api/pkg/config"
	"github.com/jhoicas/Liquidacion-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	salesRepo := postgres.NewSalesRepository(pool)
	channelRepo := postgres.NewChannelRepository(pool)
	feeRepo := postgres.NewFeeSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	feesUC := fees.NewUseCase(feeRepo, channelRepo, log)

	cascadeCfg := settlement.CascadeConfig{
		BasePrice:              cfg.Settlement.BasePrice,
		MazePaymentPerPerson:   cfg.Settlement.MazePaymentPerPerson,
		CulturePaymentFromSkp:  cfg.Settlement.CulturePaymentFromSkp,
		CulturePaymentFromMaze: cfg.Settlement.CulturePaymentFromMaze,
		PlatformFeeToSkp:       cfg.Settlement.PlatformFeeToSkp,
		AgencyFeeRate:          cfg.Settlement.AgencyFeeRate,
	}
	settlementUC := appsettlement.NewUseCase(salesRepo, channelRepo, cascadeCfg, log)

	aggregator := aggregation.NewDailyAggregator(cfg.Settlement.BasePrice)
	salesUC := sales.NewUseCase(txRunner, salesRepo, feesUC, aggregator, settlementUC, log)

	// PDF: reporte imprimible de la liquidación mensual
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	xmlExporter := export.NewXMLExporter()

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
		Title:    "Settlement Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SettlementUC: settlementUC,
		SalesUC:      salesUC,
		FeesUC:       feesUC,
		PDF:          pdfGenerator,
		Exporter:     xmlExporter,
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
