package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/application/pagos"
)

// PagoHandler maneja el registro y la verificación manual de pagos.
type PagoHandler struct {
	uc *pagos.PagosUseCase
}

// NewPagoHandler construye el handler.
func NewPagoHandler(uc *pagos.PagosUseCase) *PagoHandler {
	return &PagoHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar constancia de pago
// @Description  El cliente declara su pago (yape, plin, transferencia); queda pendiente de verificación.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarPagoRequest  true  "Pedido, método y constancia"
// @Success      201   {object}  dto.PagoResponse
// @Failure      409   {object}  dto.ErrorResponse  "Pedido no está pendiente"
// @Router       /api/pagos [post]
func (h *PagoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PedidoID == "" || in.Metodo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido_id y metodo son requeridos"})
	}
	pago, err := h.uc.Registrar(c.Context(), pagos.RegistrarInput{
		PedidoID:          in.PedidoID,
		Metodo:            in.Metodo,
		ComprobanteURL:    in.ComprobanteURL,
		ReferenciaExterna: in.ReferenciaExterna,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PagoFromEntity(pago))
}

// Confirmar godoc
// @Summary      Confirmar pago
// @Description  Valida el pago y pasa el pedido a pagado. Queda registrado quién verificó.
// @Tags         pagos
// @Security     Bearer
// @Param        id  path  string  true  "ID del pago"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Pago ya resuelto"
// @Router       /api/pagos/{id}/confirmacion [post]
func (h *PagoHandler) Confirmar(c *fiber.Ctx) error {
	if err := h.uc.Confirmar(c.Context(), c.Params("id"), GetUserID(c), time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Rechazar godoc
// @Summary      Rechazar pago
// @Description  El pedido sigue pendiente y el cliente puede registrar otro intento.
// @Tags         pagos
// @Security     Bearer
// @Param        id  path  string  true  "ID del pago"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Pago ya resuelto"
// @Router       /api/pagos/{id}/rechazo [post]
func (h *PagoHandler) Rechazar(c *fiber.Ctx) error {
	if err := h.uc.Rechazar(c.Context(), c.Params("id"), GetUserID(c), time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
