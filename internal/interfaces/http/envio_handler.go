package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/application/envios"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// EnvioHandler maneja couriers, geografía, tarifas y despachos.
type EnvioHandler struct {
	uc *envios.EnviosUseCase
}

// NewEnvioHandler construye el handler.
func NewEnvioHandler(uc *envios.EnviosUseCase) *EnvioHandler {
	return &EnvioHandler{uc: uc}
}

// CrearEmpresa godoc
// @Summary      Registrar courier
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearEmpresaEnvioRequest  true  "Datos del courier"
// @Success      201   {object}  dto.EmpresaEnvioResponse
// @Router       /api/envios/empresas [post]
func (h *EnvioHandler) CrearEmpresa(c *fiber.Ctx) error {
	var in dto.CrearEmpresaEnvioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	empresa, err := h.uc.CrearEmpresa(c.Context(), &entity.EmpresaEnvio{
		Nombre:      in.Nombre,
		Telefono:    in.Telefono,
		APIEndpoint: in.APIEndpoint,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EmpresaEnvioFromEntity(empresa))
}

// ListEmpresas godoc
// @Summary      Listar couriers
// @Tags         envios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmpresaEnvioResponse
// @Router       /api/envios/empresas [get]
func (h *EnvioHandler) ListEmpresas(c *fiber.Ctx) error {
	empresas, err := h.uc.ListEmpresas(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.EmpresaEnvioResponse, 0, len(empresas))
	for _, e := range empresas {
		out = append(out, dto.EmpresaEnvioFromEntity(e))
	}
	return c.JSON(out)
}

// CrearRegion godoc
// @Summary      Registrar región
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearRegionRequest  true  "Nombre de la región"
// @Success      201   {object}  entity.Region
// @Router       /api/envios/regiones [post]
func (h *EnvioHandler) CrearRegion(c *fiber.Ctx) error {
	var in dto.CrearRegionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	region, err := h.uc.CrearRegion(c.Context(), &entity.Region{Nombre: in.Nombre})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(region)
}

// CrearCiudad godoc
// @Summary      Registrar ciudad
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCiudadRequest  true  "Nombre y región"
// @Success      201   {object}  dto.CiudadResponse
// @Router       /api/envios/ciudades [post]
func (h *EnvioHandler) CrearCiudad(c *fiber.Ctx) error {
	var in dto.CrearCiudadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ciudad, err := h.uc.CrearCiudad(c.Context(), &entity.Ciudad{Nombre: in.Nombre, RegionID: in.RegionID})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CiudadResponse{ID: ciudad.ID, Nombre: ciudad.Nombre, RegionID: ciudad.RegionID})
}

// ListCiudades godoc
// @Summary      Listar ciudades
// @Tags         envios
// @Produce      json
// @Param        region_id  query  string  false  "Filtrar por región"
// @Success      200  {array}  dto.CiudadResponse
// @Router       /api/envios/ciudades [get]
func (h *EnvioHandler) ListCiudades(c *fiber.Ctx) error {
	ciudades, err := h.uc.ListCiudades(c.Context(), c.Query("region_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.CiudadResponse, 0, len(ciudades))
	for _, ciudad := range ciudades {
		out = append(out, dto.CiudadResponse{ID: ciudad.ID, Nombre: ciudad.Nombre, RegionID: ciudad.RegionID})
	}
	return c.JSON(out)
}

// CrearTarifa godoc
// @Summary      Crear tarifa de envío
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearTarifaRequest  true  "Ciudad, courier, tramo de peso y costo"
// @Success      201   {object}  dto.TarifaResponse
// @Router       /api/envios/tarifas [post]
func (h *EnvioHandler) CrearTarifa(c *fiber.Ctx) error {
	var in dto.CrearTarifaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tarifa, err := h.uc.CrearTarifa(c.Context(), &entity.TarifaEnvio{
		CiudadID:  in.CiudadID,
		EmpresaID: in.EmpresaID,
		PesoMinKg: in.PesoMinKg,
		PesoMaxKg: in.PesoMaxKg,
		Costo:     in.Costo,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TarifaFromEntity(tarifa))
}

// Cotizar godoc
// @Summary      Cotizar envío
// @Description  Devuelve la tarifa activa que cubre la ciudad y el peso indicados.
// @Tags         envios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CotizarRequest  true  "Ciudad y peso"
// @Success      200   {object}  dto.TarifaResponse
// @Failure      404   {object}  dto.ErrorResponse  "Sin cobertura para ese tramo"
// @Router       /api/envios/cotizar [post]
func (h *EnvioHandler) Cotizar(c *fiber.Ctx) error {
	var in dto.CotizarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tarifa, err := h.uc.Cotizar(c.Context(), in.CiudadID, in.PesoKg)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.TarifaFromEntity(tarifa))
}

// GetByPedido godoc
// @Summary      Obtener envío de un pedido
// @Tags         envios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.EnvioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/envio [get]
func (h *EnvioHandler) GetByPedido(c *fiber.Ctx) error {
	envio, err := h.uc.GetEnvioByPedido(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if envio == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "envío no encontrado"})
	}
	return c.JSON(dto.EnvioFromEntity(envio))
}

// Despachar godoc
// @Summary      Despachar pedido
// @Description  Asigna courier y tracking; el pedido pasa a enviado.
// @Tags         envios
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.DespacharRequest  true  "Courier y tracking"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Pedido no pagado"
// @Router       /api/pedidos/{id}/despacho [post]
func (h *EnvioHandler) Despachar(c *fiber.Ctx) error {
	var in dto.DespacharRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EmpresaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa_id es requerido"})
	}
	if err := h.uc.Despachar(c.Context(), c.Params("id"), in.EmpresaID, in.Tracking, in.EntregaEstimada, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarcarEntregado godoc
// @Summary      Marcar pedido como entregado
// @Tags         envios
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Envío no está en tránsito"
// @Router       /api/pedidos/{id}/entrega [post]
func (h *EnvioHandler) MarcarEntregado(c *fiber.Ctx) error {
	if err := h.uc.MarcarEntregado(c.Context(), c.Params("id"), time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
