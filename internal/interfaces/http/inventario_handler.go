package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/application/inventory"
)

// InventarioHandler maneja el libro de inventario: ingresos, salidas, ajustes,
// reservas y consultas de saldo.
type InventarioHandler struct {
	uc *inventory.InventarioUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventory.InventarioUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Recibir godoc
// @Summary      Registrar ingreso directo de mercadería (lote nuevo)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecibirLoteRequest  true  "Datos del lote"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario/lotes [post]
func (h *InventarioHandler) Recibir(c *fiber.Ctx) error {
	var in dto.RecibirLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lote, err := h.uc.Recibir(c.Context(), inventory.RecibirInput{
		VarianteID:              in.VarianteID,
		ProductoID:              in.ProductoID,
		ProveedorID:             in.ProveedorID,
		CodigoLote:              in.CodigoLote,
		Presentacion:            in.Presentacion,
		UnidadesPorPresentacion: in.UnidadesPorPresentacion,
		Cantidad:                in.Cantidad,
		CostoTotal:              in.CostoTotal,
		FechaVencimiento:        in.FechaVencimiento,
		AlmacenID:               in.AlmacenID,
		UsuarioID:               GetUserID(c),
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LoteFromEntity(lote))
}

// Descontar godoc
// @Summary      Salida de stock con política FEFO
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescontarRequest  true  "Variante y cantidad"
// @Success      200   {array}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/salidas [post]
func (h *InventarioHandler) Descontar(c *fiber.Ctx) error {
	var in dto.DescontarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movimientos, err := h.uc.Descontar(c.Context(), in.VarianteID, in.Cantidad, in.Motivo, GetUserID(c), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, dto.MovimientoFromEntity(m))
	}
	return c.JSON(out)
}

// Ajustar godoc
// @Summary      Ajuste manual de stock (con signo)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjustarRequest  true  "Variante, delta y motivo"
// @Success      200   {object}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventarioHandler) Ajustar(c *fiber.Ctx) error {
	var in dto.AjustarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Motivo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "motivo es requerido"})
	}
	movimiento, err := h.uc.Ajustar(c.Context(), in.VarianteID, in.Delta, in.Motivo, GetUserID(c), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MovimientoFromEntity(movimiento))
}

// Reservar godoc
// @Summary      Reservar unidades de una variante
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservarRequest  true  "Variante y cantidad"
// @Success      200   {object}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/reservas [post]
func (h *InventarioHandler) Reservar(c *fiber.Ctx) error {
	var in dto.ReservarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movimiento, err := h.uc.Reservar(c.Context(), in.VarianteID, in.Cantidad, GetUserID(c), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MovimientoFromEntity(movimiento))
}

// Liberar godoc
// @Summary      Liberar unidades reservadas
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservarRequest  true  "Variante y cantidad"
// @Success      200   {object}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/liberaciones [post]
func (h *InventarioHandler) Liberar(c *fiber.Ctx) error {
	var in dto.ReservarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movimiento, err := h.uc.Liberar(c.Context(), in.VarianteID, in.Cantidad, GetUserID(c), time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MovimientoFromEntity(movimiento))
}

// Saldo godoc
// @Summary      Stock físico, reservado y vendible de una variante
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la variante"
// @Success      200  {object}  dto.SaldoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/variantes/{id}/saldo [get]
func (h *InventarioHandler) Saldo(c *fiber.Ctx) error {
	varianteID := c.Params("id")
	disponible, reservado, vendible, err := h.uc.SaldoVendible(c.Context(), varianteID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SaldoResponse{
		VarianteID: varianteID,
		Disponible: disponible,
		Reservado:  reservado,
		Vendible:   vendible,
	})
}

// Movimientos godoc
// @Summary      Libro de movimientos de una variante
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la variante"
// @Param        desde   query  string  false  "Fecha inicial (RFC3339)"
// @Param        hasta   query  string  false  "Fecha final (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.MovimientoResponse
// @Router       /api/inventario/variantes/{id}/movimientos [get]
func (h *InventarioHandler) Movimientos(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	var from, to *time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
		}
		from = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
		}
		to = &t
	}
	movimientos, err := h.uc.Movimientos(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, dto.MovimientoFromEntity(m))
	}
	return c.JSON(out)
}
