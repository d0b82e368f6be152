package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/application/fees"
)

// FeeHandler maneja las peticiones HTTP de configuración de tarifas.
type FeeHandler struct {
	uc *fees.UseCase
}

// NewFeeHandler construye el handler.
func NewFeeHandler(uc *fees.UseCase) *FeeHandler {
	return &FeeHandler{uc: uc}
}

// GetMonth configuración de tarifas del mes (se crea del maestro si no existe).
// GET /api/fees/:year/:month
func (h *FeeHandler) GetMonth(c *fiber.Ctx) error {
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

// UpdateMonth reemplaza tarifas por defecto de canales para el mes.
// PUT /api/fees/:year/:month
func (h *FeeHandler) UpdateMonth(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	var in dto.UpdateMonthlyFeesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateMonth(year, month, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// AddOverride agrega una ventana de tarifa especial al mes.
// POST /api/fees/:year/:month/overrides
func (h *FeeHandler) AddOverride(c *fiber.Ctx) error {
	year, month, err := periodParams(c)
	if err != nil {
		return badParams(c)
	}
	var in dto.AddFeeOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AddOverride(year, month, in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DeleteOverride elimina una ventana de override del mes.
// DELETE /api/fees/:year/:month/overrides/:id
func (h *FeeHandler) DeleteOverride(c *fiber.Ctx) error {
	if _, _, err := periodParams(c); err != nil {
		return badParams(c)
	}
	if err := h.uc.DeleteOverride(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
