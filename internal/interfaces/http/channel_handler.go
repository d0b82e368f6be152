package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Liquidacion-api/internal/application/dto"
	"github.com/jhoicas/Liquidacion-api/internal/application/fees"
)

// ChannelHandler maneja las peticiones HTTP del maestro de canales y categorías.
type ChannelHandler struct {
	uc *fees.UseCase
}

// NewChannelHandler construye el handler.
func NewChannelHandler(uc *fees.UseCase) *ChannelHandler {
	return &ChannelHandler{uc: uc}
}

// List canales del maestro más los personalizados.
// GET /api/channels
func (h *ChannelHandler) List(c *fiber.Ctx) error {
	channels, err := h.uc.ListChannels()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(channels)
}

// Create registra un canal personalizado.
// POST /api/channels
func (h *ChannelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChannelRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	created, err := h.uc.CreateChannel(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListCategories categorías de venta offline.
// GET /api/categories
func (h *ChannelHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.uc.ListCategories()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(categories)
}
