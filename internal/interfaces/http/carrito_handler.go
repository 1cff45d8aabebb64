package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/carrito"
	"github.com/dcastillo/comercio-api/internal/application/dto"
)

// CarritoHandler maneja el carrito de compras del usuario autenticado.
type CarritoHandler struct {
	uc *carrito.CarritoUseCase
}

// NewCarritoHandler construye el handler.
func NewCarritoHandler(uc *carrito.CarritoUseCase) *CarritoHandler {
	return &CarritoHandler{uc: uc}
}

// Obtener godoc
// @Summary      Obtener (o crear) el carrito activo del usuario
// @Tags         carrito
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CarritoResponse
// @Router       /api/carrito [get]
func (h *CarritoHandler) Obtener(c *fiber.Ctx) error {
	cart, err := h.uc.ObtenerOCrear(c.Context(), GetUserID(c), c.Get("X-Session-ID"), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	items, err := h.uc.Items(c.Context(), cart.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.CarritoFromEntity(cart, items))
}

// AgregarItem godoc
// @Summary      Agregar variante al carrito
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del carrito"
// @Param        body  body  dto.AgregarItemRequest  true  "Variante y cantidad"
// @Success      201   {object}  dto.CarritoItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carrito/{id}/items [post]
func (h *CarritoHandler) AgregarItem(c *fiber.Ctx) error {
	var in dto.AgregarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AgregarItem(c.Context(), c.Params("id"), in.VarianteID, in.Cantidad, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CarritoItemResponse{
		ID:             item.ID,
		VarianteID:     item.VarianteID,
		Cantidad:       item.Cantidad,
		PrecioUnitario: item.PrecioUnitarioSnapshot,
	})
}

// QuitarItem godoc
// @Summary      Quitar línea del carrito
// @Tags         carrito
// @Security     Bearer
// @Param        id      path  string  true  "ID del carrito"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/{id}/items/{itemId} [delete]
func (h *CarritoHandler) QuitarItem(c *fiber.Ctx) error {
	if err := h.uc.QuitarItem(c.Context(), c.Params("id"), c.Params("itemId"), time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AplicarCupon godoc
// @Summary      Registrar código de cupón en el carrito
// @Tags         carrito
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del carrito"
// @Param        body  body  dto.AplicarCuponRequest  true  "Código"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/carrito/{id}/cupon [put]
func (h *CarritoHandler) AplicarCupon(c *fiber.Ctx) error {
	var in dto.AplicarCuponRequest
	if err := c.BodyParser(&in); err != nil || in.Codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "codigo es requerido"})
	}
	if err := h.uc.AplicarCupon(c.Context(), c.Params("id"), in.Codigo, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
