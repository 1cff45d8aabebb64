package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var tiposImport = map[string]bool{
	entity.ImportProductos: true,
	entity.ImportLotes:     true,
	entity.ImportCompras:   true,
	entity.ImportClientes:  true,
}

var tiposExport = map[string]bool{
	entity.ExportVentas:    true,
	entity.ExportStock:     true,
	entity.ExportProductos: true,
}

// JobsUseCase encargos de importación y exportación de datos. El procesamiento
// de archivos corre en un servicio externo que reporta el resultado; aquí solo
// se lleva el estado del encargo.
type JobsUseCase struct {
	jobRepo repository.JobRepository
}

func NewJobsUseCase(jobRepo repository.JobRepository) *JobsUseCase {
	return &JobsUseCase{jobRepo: jobRepo}
}

// SolicitarImport registra un encargo de importación pendiente.
func (uc *JobsUseCase) SolicitarImport(ctx context.Context, usuarioID, tipo, archivoURL string, now time.Time) (*entity.ImportJob, error) {
	if usuarioID == "" || archivoURL == "" || !tiposImport[tipo] {
		return nil, domain.ErrEntradaInvalida
	}
	job := &entity.ImportJob{
		ID:          uuid.New().String(),
		UsuarioID:   usuarioID,
		Tipo:        tipo,
		ArchivoURL:  archivoURL,
		Status:      entity.JobPendiente,
		FechaInicio: now,
	}
	if err := uc.jobRepo.CreateImport(job); err != nil {
		return nil, err
	}
	return job, nil
}

// SolicitarExport registra un encargo de exportación pendiente.
func (uc *JobsUseCase) SolicitarExport(ctx context.Context, usuarioID, tipo, parametros string, now time.Time) (*entity.ExportJob, error) {
	if usuarioID == "" || !tiposExport[tipo] {
		return nil, domain.ErrEntradaInvalida
	}
	job := &entity.ExportJob{
		ID:            uuid.New().String(),
		UsuarioID:     usuarioID,
		Tipo:          tipo,
		Parametros:    parametros,
		Status:        entity.JobPendiente,
		FechaCreacion: now,
	}
	if err := uc.jobRepo.CreateExport(job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetImport devuelve un encargo de importación por ID (nil si no existe).
func (uc *JobsUseCase) GetImport(ctx context.Context, id string) (*entity.ImportJob, error) {
	return uc.jobRepo.GetImport(id)
}

// GetExport devuelve un encargo de exportación por ID (nil si no existe).
func (uc *JobsUseCase) GetExport(ctx context.Context, id string) (*entity.ExportJob, error) {
	return uc.jobRepo.GetExport(id)
}

// ResolverImport registra el resultado reportado por el procesador externo.
func (uc *JobsUseCase) ResolverImport(ctx context.Context, job *entity.ImportJob, status, errores string, now time.Time) error {
	if status != entity.JobCompletado && status != entity.JobFallido {
		return domain.ErrEntradaInvalida
	}
	job.Status = status
	job.Errores = errores
	job.FechaFin = &now
	return uc.jobRepo.UpdateImport(job)
}

// ResolverExport registra el resultado y la URL del archivo generado.
func (uc *JobsUseCase) ResolverExport(ctx context.Context, job *entity.ExportJob, status, urlArchivo string, now time.Time) error {
	if status != entity.JobCompletado && status != entity.JobFallido {
		return domain.ErrEntradaInvalida
	}
	job.Status = status
	job.URLArchivo = urlArchivo
	job.FechaCompletado = &now
	return uc.jobRepo.UpdateExport(job)
}

// ListImports lista los encargos de importación más recientes.
func (uc *JobsUseCase) ListImports(ctx context.Context, limit, offset int) ([]*entity.ImportJob, error) {
	return uc.jobRepo.ListImports(normalizarLimite(limit), offset)
}

// ListExports lista los encargos de exportación más recientes.
func (uc *JobsUseCase) ListExports(ctx context.Context, limit, offset int) ([]*entity.ExportJob, error) {
	return uc.jobRepo.ListExports(normalizarLimite(limit), offset)
}

func normalizarLimite(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
