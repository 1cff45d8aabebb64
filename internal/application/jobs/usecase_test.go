package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

type memJobs struct {
	imports []*entity.ImportJob
	exports []*entity.ExportJob
}

func (m *memJobs) CreateImport(j *entity.ImportJob) error { m.imports = append(m.imports, j); return nil }
func (m *memJobs) GetImport(id string) (*entity.ImportJob, error) {
	for _, j := range m.imports {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}
func (m *memJobs) UpdateImport(*entity.ImportJob) error { return nil }
func (m *memJobs) ListImports(int, int) ([]*entity.ImportJob, error) {
	return m.imports, nil
}
func (m *memJobs) CreateExport(j *entity.ExportJob) error { m.exports = append(m.exports, j); return nil }
func (m *memJobs) GetExport(id string) (*entity.ExportJob, error) {
	for _, j := range m.exports {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}
func (m *memJobs) UpdateExport(*entity.ExportJob) error { return nil }
func (m *memJobs) ListExports(int, int) ([]*entity.ExportJob, error) {
	return m.exports, nil
}

func TestSolicitarImport(t *testing.T) {
	repo := &memJobs{}
	uc := NewJobsUseCase(repo)
	now := time.Now()

	job, err := uc.SolicitarImport(context.Background(), "u1", entity.ImportProductos, "https://files/x.csv", now)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPendiente, job.Status)

	_, err = uc.SolicitarImport(context.Background(), "u1", "facturas", "https://files/x.csv", now)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "tipo de importación desconocido")

	_, err = uc.SolicitarImport(context.Background(), "u1", entity.ImportLotes, "", now)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "sin archivo")
}

func TestResolverImport(t *testing.T) {
	uc := NewJobsUseCase(&memJobs{})
	now := time.Now()
	job := &entity.ImportJob{ID: "j1", Status: entity.JobProcesando}

	err := uc.ResolverImport(context.Background(), job, entity.JobProcesando, "", now)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "solo estados terminales")

	require.NoError(t, uc.ResolverImport(context.Background(), job, entity.JobFallido, "fila 3: SKU duplicado", now))
	assert.Equal(t, entity.JobFallido, job.Status)
	assert.NotNil(t, job.FechaFin)
}

func TestSolicitarExport(t *testing.T) {
	uc := NewJobsUseCase(&memJobs{})
	now := time.Now()

	job, err := uc.SolicitarExport(context.Background(), "u1", entity.ExportVentas, `{"desde":"2025-01-01"}`, now)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPendiente, job.Status)

	require.NoError(t, uc.ResolverExport(context.Background(), job, entity.JobCompletado, "https://files/ventas.xlsx", now))
	assert.Equal(t, "https://files/ventas.xlsx", job.URLArchivo)
}
