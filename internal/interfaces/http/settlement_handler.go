package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	appsettlement "github.com/jhoicas/Liquidacion-api/internal/application/settlement"
	"github.com/jhoicas/Liquidacion-api/internal/domain/entity"
)

// SettlementPDFGenerator genera el reporte imprimible de una liquidación.
type SettlementPDFGenerator interface {
	GenerateSettlementPDF(ctx context.Context, res *entity.SettlementResult) ([]byte, error)
}

// SettlementXMLExporter serializa una liquidación al XML contable.
type SettlementXMLExporter interface {
	ExportSettlement(res *entity.SettlementResult) ([]byte, error)
}

// SettlementHandler maneja las peticiones HTTP de liquidación.
type SettlementHandler struct {
	uc       *appsettlement.UseCase
	pdf      SettlementPDFGenerator
	exporter SettlementXMLExporter
}

// NewSettlementHandler construye el handler.
func NewSettlementHandler(uc *appsettlement.UseCase, pdf SettlementPDFGenerator, exporter SettlementXMLExporter) *SettlementHandler {
	return &SettlementHandler{uc: uc, pdf: pdf, exporter: exporter}
}

// Calculate ejecuta la cascada con los conteos del body, sin persistir.
// POST /api/settlement/calculate
func (h *SettlementHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateSettlementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.CalculateDirect(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewSettlementResponse(res))
}

// GetMonth liquida un mes desde sus registros persistidos.
// GET /api/settlement/:year/:month
func (h *SettlementHandler) GetMonth(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	res, err := h.uc.CalculateMonth(c.Context(), year, month)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewSettlementResponse(res))
}

// MonthPDF reporte imprimible de la liquidación del mes.
// GET /api/settlement/:year/:month/report.pdf
func (h *SettlementHandler) MonthPDF(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	res, err := h.uc.CalculateMonth(c.Context(), year, month)
	if err != nil {
		return errorResponse(c, err)
	}
	pdfBytes, err := h.pdf.GenerateSettlementPDF(c.Context(), res)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="settlement.pdf"`)
	return c.Send(pdfBytes)
}

// MonthXML export XML de la liquidación del mes para el sistema contable.
// GET /api/settlement/:year/:month/export.xml
func (h *SettlementHandler) MonthXML(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	res, err := h.uc.CalculateMonth(c.Context(), year, month)
	if err != nil {
		return errorResponse(c, err)
	}
	xmlBytes, err := h.exporter.ExportSettlement(res)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(xmlBytes)
}

// RollupYear acumulado de todos los meses con datos del año.
// GET /api/settlement/rollup/:year
func (h *SettlementHandler) RollupYear(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return badParams(c)
	}
	view, err := h.uc.RollupYear(c.Context(), year)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewCumulativeViewResponse(view))
}

// RollupAll acumulado histórico completo.
// GET /api/settlement/rollup
func (h *SettlementHandler) RollupAll(c *fiber.Ctx) error {
	view, err := h.uc.RollupAll(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.NewCumulativeViewResponse(view))
}
