package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/checkout"
	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// PedidoHandler maneja el checkout y la consulta de pedidos.
type PedidoHandler struct {
	uc *checkout.CheckoutUseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *checkout.CheckoutUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Checkout godoc
// @Summary      Convertir el carrito en pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito, método de pago y envío"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse  "Sin stock suficiente"
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Finalizar(c.Context(), checkout.FinalizarInput{
		UsuarioID:      GetUserID(c),
		CarritoID:      in.CarritoID,
		MetodoPago:     in.MetodoPago,
		DireccionEnvio: in.DireccionEnvio,
		CiudadID:       in.CiudadID,
		Nota:           in.Nota,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	out := dto.PedidoFromEntity(result.Pedido, result.Items)
	out.CuponRechazado = result.CuponRechazado
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	pedido, items, err := h.uc.GetPedido(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if pedido == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	// Un cliente solo ve sus propios pedidos; admin y almacenero ven todos.
	if GetRol(c) == entity.RolCliente && pedido.UsuarioID != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "pedido de otro usuario"})
	}
	return c.JSON(dto.PedidoFromEntity(pedido, items))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PedidoListResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	// Un cliente lista solo lo suyo; los operadores, todo.
	usuarioID := ""
	if GetRol(c) == entity.RolCliente {
		usuarioID = GetUserID(c)
	}
	pedidos, err := h.uc.ListPedidos(c.Context(), usuarioID, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := dto.PedidoListResponse{
		Items: make([]dto.PedidoResponse, 0, len(pedidos)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range pedidos {
		out.Items = append(out.Items, dto.PedidoFromEntity(p, nil))
	}
	return c.JSON(out)
}

// Cancelar godoc
// @Summary      Cancelar pedido
// @Tags         pedidos
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Pedido en estado terminal"
// @Router       /api/pedidos/{id} [delete]
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
