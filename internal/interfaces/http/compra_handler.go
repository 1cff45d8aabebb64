package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/compras"
	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// CompraHandler maneja proveedores y órdenes de compra.
type CompraHandler struct {
	uc *compras.ComprasUseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *compras.ComprasUseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// CrearProveedor godoc
// @Summary      Registrar proveedor
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProveedorRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse  "RUC inválido"
// @Router       /api/proveedores [post]
func (h *CompraHandler) CrearProveedor(c *fiber.Ctx) error {
	var in dto.CrearProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	proveedor, err := h.uc.CrearProveedor(c.Context(), &entity.Proveedor{
		Nombre:    in.Nombre,
		RUC:       in.RUC,
		Contacto:  in.Contacto,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProveedorFromEntity(proveedor))
}

// ListProveedores godoc
// @Summary      Listar proveedores
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores [get]
func (h *CompraHandler) ListProveedores(c *fiber.Ctx) error {
	proveedores, err := h.uc.ListProveedores(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, dto.ProveedorFromEntity(p))
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Registrar orden de compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCompraRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.CompraResponse
// @Failure      404   {object}  dto.ErrorResponse  "Proveedor no encontrado"
// @Router       /api/compras [post]
func (h *CompraHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProveedorID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor_id e items son requeridos"})
	}
	input := compras.CrearInput{
		ProveedorID: in.ProveedorID,
		FechaCompra: in.FechaCompra,
		Nota:        in.Nota,
	}
	if input.FechaCompra.IsZero() {
		input.FechaCompra = time.Now()
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, compras.ItemInput{
			ProductoID:                 it.ProductoID,
			VarianteID:                 it.VarianteID,
			Presentacion:               it.Presentacion,
			UnidadesPorPresentacion:    it.UnidadesPorPresentacion,
			CantidadPresentaciones:     it.CantidadPresentaciones,
			UnidadesSueltas:            it.UnidadesSueltas,
			PrecioUnitarioPresentacion: it.PrecioUnitarioPresentacion,
		})
	}
	compra, err := h.uc.Crear(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CompraFromEntity(compra))
}

// GetByID godoc
// @Summary      Obtener compra con sus líneas
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.CompraDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
	compra, items, err := h.uc.GetCompra(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if compra == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
	}
	return c.JSON(dto.CompraDetalleFromEntity(compra, items))
}

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.CompraResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	lista, err := h.uc.ListCompras(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.CompraResponse, 0, len(lista))
	for _, compra := range lista {
		out = append(out, dto.CompraFromEntity(compra))
	}
	return c.JSON(out)
}

// Recibir godoc
// @Summary      Marcar compra como recibida
// @Description  Genera un lote y un asiento de entrada por cada línea con variante.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.RecibirCompraRequest  false  "Fechas de vencimiento por línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Compra ya recibida o cancelada"
// @Router       /api/compras/{id}/recepcion [post]
func (h *CompraHandler) Recibir(c *fiber.Ctx) error {
	var in dto.RecibirCompraRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.MarcarRecibida(c.Context(), c.Params("id"), GetUserID(c), in.FechaVencimiento, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancelar godoc
// @Summary      Cancelar compra pendiente
// @Tags         compras
// @Security     Bearer
// @Param        id  path  string  true  "ID de la compra"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *CompraHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
