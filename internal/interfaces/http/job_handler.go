package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/application/jobs"
)

// JobHandler maneja encargos de importación y exportación de datos.
type JobHandler struct {
	uc *jobs.JobsUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *jobs.JobsUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// SolicitarImport godoc
// @Summary      Encargar importación
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitarImportRequest  true  "Tipo y archivo"
// @Success      201   {object}  dto.ImportJobResponse
// @Router       /api/jobs/imports [post]
func (h *JobHandler) SolicitarImport(c *fiber.Ctx) error {
	var in dto.SolicitarImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.SolicitarImport(c.Context(), GetUserID(c), in.Tipo, in.ArchivoURL, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportJobFromEntity(job))
}

// SolicitarExport godoc
// @Summary      Encargar exportación
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitarExportRequest  true  "Tipo y parámetros"
// @Success      201   {object}  dto.ExportJobResponse
// @Router       /api/jobs/exports [post]
func (h *JobHandler) SolicitarExport(c *fiber.Ctx) error {
	var in dto.SolicitarExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.SolicitarExport(c.Context(), GetUserID(c), in.Tipo, in.Parametros, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExportJobFromEntity(job))
}

// ListImports godoc
// @Summary      Listar importaciones
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ImportJobResponse
// @Router       /api/jobs/imports [get]
func (h *JobHandler) ListImports(c *fiber.Ctx) error {
	lista, err := h.uc.ListImports(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ImportJobResponse, 0, len(lista))
	for _, job := range lista {
		out = append(out, dto.ImportJobFromEntity(job))
	}
	return c.JSON(out)
}

// ListExports godoc
// @Summary      Listar exportaciones
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ExportJobResponse
// @Router       /api/jobs/exports [get]
func (h *JobHandler) ListExports(c *fiber.Ctx) error {
	lista, err := h.uc.ListExports(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ExportJobResponse, 0, len(lista))
	for _, job := range lista {
		out = append(out, dto.ExportJobFromEntity(job))
	}
	return c.JSON(out)
}

// ResolverImport godoc
// @Summary      Resolver importación
// @Description  El procesador externo reporta el resultado del encargo.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del encargo"
// @Param        body  body  dto.ResolverJobRequest  true  "Resultado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/imports/{id}/resultado [post]
func (h *JobHandler) ResolverImport(c *fiber.Ctx) error {
	var in dto.ResolverJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.GetImport(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "encargo no encontrado"})
	}
	if err := h.uc.ResolverImport(c.Context(), job, in.Status, in.Errores, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResolverExport godoc
// @Summary      Resolver exportación
// @Description  El procesador externo reporta el resultado y la URL del archivo.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del encargo"
// @Param        body  body  dto.ResolverJobRequest  true  "Resultado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/exports/{id}/resultado [post]
func (h *JobHandler) ResolverExport(c *fiber.Ctx) error {
	var in dto.ResolverJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.GetExport(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if job == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "encargo no encontrado"})
	}
	if err := h.uc.ResolverExport(c.Context(), job, in.Status, in.URLArchivo, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
