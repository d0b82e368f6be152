package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Liquidacion-api/internal/application/fees"
	"github.com/jhoicas/Liquidacion-api/internal/application/sales"
	appsettlement "github.com/jhoicas/Liquidacion-api/internal/application/settlement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SettlementUC *appsettlement.UseCase
	SalesUC      *sales.UseCase
	FeesUC       *fees.UseCase
	PDF          SettlementPDFGenerator
	Exporter     SettlementXMLExporter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Liquidación
	settlementGroup := api.Group("/settlement")
	settlementHandler := NewSettlementHandler(deps.SettlementUC, deps.PDF, deps.Exporter)
	settlementGroup.Post("/calculate", settlementHandler.Calculate)
	// rollup antes que :year/:month para que "rollup" no se tome como año
	settlementGroup.Get("/rollup", settlementHandler.RollupAll)
	settlementGroup.Get("/rollup/:year", settlementHandler.RollupYear)
	settlementGroup.Get("/:year/:month", settlementHandler.GetMonth)
	settlementGroup.Get("/:year/:month/report.pdf", settlementHandler.MonthPDF)
	settlementGroup.Get("/:year/:month/export.xml", settlementHandler.MonthXML)

	// Ventas diarias
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/:year/:month/upload", salesHandler.Upload)
	salesGroup.Get("/:year/:month", salesHandler.GetMonth)
	salesGroup.Post("/:year/:month/distribute", salesHandler.Distribute)

	// Tarifas de comisión
	feesGroup := api.Group("/fees")
	feeHandler := NewFeeHandler(deps.FeesUC)
	feesGroup.Get("/:year/:month", feeHandler.GetMonth)
	feesGroup.Put("/:year/:month", feeHandler.UpdateMonth)
	feesGroup.Post("/:year/:month/overrides", feeHandler.AddOverride)
	feesGroup.Delete("/:year/:month/overrides/:id", feeHandler.DeleteOverride)

	// Maestro de canales y categorías
	channelHandler := NewChannelHandler(deps.FeesUC)
	api.Get("/channels", channelHandler.List)
	api.Post("/channels", channelHandler.Create)
	api.Get("/categories", channelHandler.ListCategories)
}
