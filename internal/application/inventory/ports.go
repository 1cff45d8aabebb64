package inventory

import (
	"context"

	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// inventario: o se persisten todos los asientos de una operación o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		varianteRepo repository.VarianteRepository,
	) error) error
}
