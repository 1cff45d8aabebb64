package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación sobre PostgreSQL para encargos de import/export.
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

// CreateImport persiste un encargo de importación.
func (r *JobRepo) CreateImport(job *entity.ImportJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	query := `
		INSERT INTO import_jobs (id, usuario_id, tipo, archivo_url, status, errores, fecha_inicio, fecha_fin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.UsuarioID, job.Tipo, job.ArchivoURL, job.Status,
		job.Errores, job.FechaInicio, job.FechaFin,
	)
	if err != nil {
		return fmt.Errorf("create import job: %w", err)
	}
	return nil
}

// GetImport devuelve un encargo de importación por ID.
func (r *JobRepo) GetImport(id string) (*entity.ImportJob, error) {
	query := `
		SELECT id, usuario_id, tipo, archivo_url, status, errores, fecha_inicio, fecha_fin
		FROM import_jobs WHERE id = $1`
	var j entity.ImportJob
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.UsuarioID, &j.Tipo, &j.ArchivoURL, &j.Status,
		&j.Errores, &j.FechaInicio, &j.FechaFin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}
	return &j, nil
}

// UpdateImport actualiza el estado de un encargo de importación.
func (r *JobRepo) UpdateImport(job *entity.ImportJob) error {
	query := `UPDATE import_jobs SET status = $2, errores = $3, fecha_fin = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, job.ID, job.Status, job.Errores, job.FechaFin)
	if err != nil {
		return fmt.Errorf("update import job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ListImports devuelve encargos de importación paginados, más recientes primero.
func (r *JobRepo) ListImports(limit, offset int) ([]*entity.ImportJob, error) {
	query := `
		SELECT id, usuario_id, tipo, archivo_url, status, errores, fecha_inicio, fecha_fin
		FROM import_jobs ORDER BY fecha_inicio DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportJob
	for rows.Next() {
		var j entity.ImportJob
		if err := rows.Scan(&j.ID, &j.UsuarioID, &j.Tipo, &j.ArchivoURL, &j.Status,
			&j.Errores, &j.FechaInicio, &j.FechaFin); err != nil {
			return nil, fmt.Errorf("scan import job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

// CreateExport persiste un encargo de exportación.
func (r *JobRepo) CreateExport(job *entity.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	query := `
		INSERT INTO export_jobs (id, usuario_id, tipo, parametros, status, url_archivo, fecha_creacion, fecha_completado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.UsuarioID, job.Tipo, job.Parametros, job.Status,
		job.URLArchivo, job.FechaCreacion, job.FechaCompletado,
	)
	if err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// GetExport devuelve un encargo de exportación por ID.
func (r *JobRepo) GetExport(id string) (*entity.ExportJob, error) {
	query := `
		SELECT id, usuario_id, tipo, parametros, status, url_archivo, fecha_creacion, fecha_completado
		FROM export_jobs WHERE id = $1`
	var j entity.ExportJob
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.UsuarioID, &j.Tipo, &j.Parametros, &j.Status,
		&j.URLArchivo, &j.FechaCreacion, &j.FechaCompletado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get export job: %w", err)
	}
	return &j, nil
}

// UpdateExport actualiza el estado de un encargo de exportación.
func (r *JobRepo) UpdateExport(job *entity.ExportJob) error {
	query := `UPDATE export_jobs SET status = $2, url_archivo = $3, fecha_completado = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, job.ID, job.Status, job.URLArchivo, job.FechaCompletado)
	if err != nil {
		return fmt.Errorf("update export job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ListExports devuelve encargos de exportación paginados, más recientes primero.
func (r *JobRepo) ListExports(limit, offset int) ([]*entity.ExportJob, error) {
	query := `
		SELECT id, usuario_id, tipo, parametros, status, url_archivo, fecha_creacion, fecha_completado
		FROM export_jobs ORDER BY fecha_creacion DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list export jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExportJob
	for rows.Next() {
		var j entity.ExportJob
		if err := rows.Scan(&j.ID, &j.UsuarioID, &j.Tipo, &j.Parametros, &j.Status,
			&j.URLArchivo, &j.FechaCreacion, &j.FechaCompletado); err != nil {
			return nil, fmt.Errorf("scan export job: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo implementación sobre PostgreSQL del registro de auditoría.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *LogRepo) Create(log *entity.LogAccion) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO log_acciones (id, usuario_id, accion, detalle, fecha)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UsuarioID, log.Accion, log.Detalle, log.Fecha,
	)
	if err != nil {
		return fmt.Errorf("create log accion: %w", err)
	}
	return nil
}

// List devuelve entradas de auditoría paginadas, más recientes primero.
func (r *LogRepo) List(limit, offset int) ([]*entity.LogAccion, error) {
	query := `
		SELECT id, usuario_id, accion, detalle, fecha
		FROM log_acciones ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list log acciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.LogAccion
	for rows.Next() {
		var l entity.LogAccion
		if err := rows.Scan(&l.ID, &l.UsuarioID, &l.Accion, &l.Detalle, &l.Fecha); err != nil {
			return nil, fmt.Errorf("scan log accion: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
