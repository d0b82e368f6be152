package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/application/sales"
)

// SalesHandler maneja las peticiones HTTP de ventas diarias.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Upload ingesta una planilla normalizada del mes.
// POST /api/sales/:year/:month/upload
func (h *SalesHandler) Upload(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	var in dto.UploadSalesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Upload(c.Context(), year, month, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetMonth registros y agregado del mes.
// GET /api/sales/:year/:month
func (h *SalesHandler) GetMonth(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	resp, err := h.uc.GetMonth(year, month)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Distribute reparte totales mensuales hacia los días del mes.
// POST /api/sales/:year/:month/distribute
func (h *SalesHandler) Distribute(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	var in dto.DistributeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Distribute(c.Context(), year, month, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
