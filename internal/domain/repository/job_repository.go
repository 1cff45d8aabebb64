package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// JobRepository puerto de persistencia para encargos de importación/exportación.
// El procesamiento de archivos es de un servicio externo; aquí solo estado.
type JobRepository interface {
	CreateImport(job *entity.ImportJob) error
	GetImport(id string) (*entity.ImportJob, error)
	UpdateImport(job *entity.ImportJob) error
	ListImports(limit, offset int) ([]*entity.ImportJob, error)

	CreateExport(job *entity.ExportJob) error
	GetExport(id string) (*entity.ExportJob, error)
	UpdateExport(job *entity.ExportJob) error
	ListExports(limit, offset int) ([]*entity.ExportJob, error)
}

// LogRepository puerto de persistencia del registro de auditoría.
type LogRepository interface {
	Create(log *entity.LogAccion) error
	List(limit, offset int) ([]*entity.LogAccion, error)
}
