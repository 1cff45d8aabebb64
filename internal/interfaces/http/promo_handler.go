package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/application/promo"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// PromoHandler maneja la administración de promociones.
type PromoHandler struct {
	uc *promo.PromoUseCase
}

// NewPromoHandler construye el handler.
func NewPromoHandler(uc *promo.PromoUseCase) *PromoHandler {
	return &PromoHandler{uc: uc}
}

// Crear godoc
// @Summary      Crear promoción
// @Tags         promociones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearPromocionRequest  true  "Datos de la promoción"
// @Success      201   {object}  dto.PromocionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/promociones [post]
func (h *PromoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearPromocionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" || in.TipoDescuento == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y tipo_descuento son requeridos"})
	}
	input := promo.CrearInput{
		Nombre:         in.Nombre,
		Codigo:         in.Codigo,
		TipoDescuento:  in.TipoDescuento,
		ValorDescuento: in.ValorDescuento,
		FechaInicio:    in.FechaInicio,
		FechaFin:       in.FechaFin,
		MinCompra:      in.MinCompra,
		MaxUsos:        in.MaxUsos,
	}
	for _, o := range in.Objetivos {
		obj := promo.ObjetivoInput{
			Objetivo:          entity.ObjetivoPromocion{Tipo: o.Tipo, ID: o.ID},
			CantidadRequerida: o.CantidadRequerida,
			CantidadGratis:    o.CantidadGratis,
		}
		if o.GratisTipo != "" || o.GratisID != "" {
			obj.ObjetivoGratis = &entity.ObjetivoPromocion{Tipo: o.GratisTipo, ID: o.GratisID}
		}
		input.Objetivos = append(input.Objetivos, obj)
	}
	promocion, err := h.uc.Crear(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	_, objetivos, err := h.uc.GetByID(c.Context(), promocion.ID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PromocionFromEntity(promocion, objetivos))
}

// GetByID godoc
// @Summary      Obtener promoción por ID
// @Tags         promociones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la promoción"
// @Success      200  {object}  dto.PromocionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promociones/{id} [get]
func (h *PromoHandler) GetByID(c *fiber.Ctx) error {
	promocion, objetivos, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if promocion == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "promoción no encontrada"})
	}
	return c.JSON(dto.PromocionFromEntity(promocion, objetivos))
}

// Desactivar godoc
// @Summary      Desactivar promoción
// @Tags         promociones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la promoción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/promociones/{id} [delete]
func (h *PromoHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
