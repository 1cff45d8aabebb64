package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// ComprobanteHandler maneja la emisión y anulación de comprobantes electrónicos.
type ComprobanteHandler struct {
	uc *billing.BillingUseCase
}

// NewComprobanteHandler construye el handler.
func NewComprobanteHandler(uc *billing.BillingUseCase) *ComprobanteHandler {
	return &ComprobanteHandler{uc: uc}
}

// Emitir godoc
// @Summary      Emitir comprobante electrónico
// @Description  Genera boleta o factura del pedido: correlativo por serie, hash, XML UBL firmado y PDF.
// @Tags         comprobantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmitirComprobanteRequest  true  "Pedido y tipo de comprobante"
// @Success      201   {object}  dto.ComprobanteResponse
// @Failure      409   {object}  dto.ErrorResponse  "Pedido sin pagar o ya facturado"
// @Router       /api/comprobantes [post]
func (h *ComprobanteHandler) Emitir(c *fiber.Ctx) error {
	var in dto.EmitirComprobanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PedidoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido_id es requerido"})
	}
	if in.Tipo != entity.ComprobanteBoleta && in.Tipo != entity.ComprobanteFactura {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser boleta o factura"})
	}
	comprobante, err := h.uc.Emitir(c.Context(), in.PedidoID, in.Tipo, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ComprobanteFromEntity(comprobante))
}

// GetByPedido godoc
// @Summary      Obtener comprobante de un pedido
// @Tags         comprobantes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ComprobanteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/comprobante [get]
func (h *ComprobanteHandler) GetByPedido(c *fiber.Ctx) error {
	comprobante, err := h.uc.GetByPedido(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if comprobante == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comprobante no encontrado"})
	}
	return c.JSON(dto.ComprobanteFromEntity(comprobante))
}

// Anular godoc
// @Summary      Anular comprobante
// @Description  El número de serie no se reutiliza.
// @Tags         comprobantes
// @Security     Bearer
// @Param        id  path  string  true  "ID del comprobante"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Comprobante ya anulado"
// @Router       /api/comprobantes/{id} [delete]
func (h *ComprobanteHandler) Anular(c *fiber.Ctx) error {
	if err := h.uc.Anular(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
