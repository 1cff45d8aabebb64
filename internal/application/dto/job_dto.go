package dto

import (
	"time"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// SolicitarImportRequest entrada para encargar una importación.
type SolicitarImportRequest struct {
	Tipo       string `json:"tipo" validate:"required,oneof=productos lotes compras clientes"`
	ArchivoURL string `json:"archivo_url" validate:"required"`
}

// SolicitarExportRequest entrada para encargar una exportación.
type SolicitarExportRequest struct {
	Tipo       string `json:"tipo" validate:"required,oneof=ventas stock productos"`
	Parametros string `json:"parametros"`
}

// ResolverJobRequest resultado reportado por el procesador externo.
type ResolverJobRequest struct {
	Status     string `json:"status" validate:"required,oneof=completado fallido"`
	Errores    string `json:"errores"`
	URLArchivo string `json:"url_archivo"`
}

// ImportJobResponse salida de un encargo de importación.
type ImportJobResponse struct {
	ID          string     `json:"id"`
	UsuarioID   string     `json:"usuario_id"`
	Tipo        string     `json:"tipo"`
	ArchivoURL  string     `json:"archivo_url"`
	Status      string     `json:"status"`
	Errores     string     `json:"errores,omitempty"`
	FechaInicio time.Time  `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`
}

// ImportJobFromEntity mapea la entidad a su respuesta.
func ImportJobFromEntity(j *entity.ImportJob) ImportJobResponse {
	return ImportJobResponse{
		ID:          j.ID,
		UsuarioID:   j.UsuarioID,
		Tipo:        j.Tipo,
		ArchivoURL:  j.ArchivoURL,
		Status:      j.Status,
		Errores:     j.Errores,
		FechaInicio: j.FechaInicio,
		FechaFin:    j.FechaFin,
	}
}

// ExportJobResponse salida de un encargo de exportación.
type ExportJobResponse struct {
	ID              string     `json:"id"`
	UsuarioID       string     `json:"usuario_id"`
	Tipo            string     `json:"tipo"`
	Parametros      string     `json:"parametros,omitempty"`
	Status          string     `json:"status"`
	URLArchivo      string     `json:"url_archivo,omitempty"`
	FechaCreacion   time.Time  `json:"fecha_creacion"`
	FechaCompletado *time.Time `json:"fecha_completado,omitempty"`
}

// ExportJobFromEntity mapea la entidad a su respuesta.
func ExportJobFromEntity(j *entity.ExportJob) ExportJobResponse {
	return ExportJobResponse{
		ID:              j.ID,
		UsuarioID:       j.UsuarioID,
		Tipo:            j.Tipo,
		Parametros:      j.Parametros,
		Status:          j.Status,
		URLArchivo:      j.URLArchivo,
		FechaCreacion:   j.FechaCreacion,
		FechaCompletado: j.FechaCompletado,
	}
}
