package repository

import (
	"time"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// LoteRepository puerto de persistencia para lotes. Los lotes nunca se borran;
// los agotados quedan con cantidad_disponible = 0.
type LoteRepository interface {
	Create(lote *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	// ListByVariante devuelve todos los lotes de la variante, agotados incluidos.
	ListByVariante(varianteID string) ([]*entity.Lote, error)
	// ListByVarianteForUpdate bloquea los lotes de la variante (SELECT FOR UPDATE)
	// para aplicar un plan de salida sin carreras.
	ListByVarianteForUpdate(varianteID string) ([]*entity.Lote, error)
	UpdateDisponible(id string, cantidadDisponible int) error
}

// MovimientoRepository puerto de persistencia del libro de movimientos.
// Solo inserta y consulta: los asientos son inmutables.
type MovimientoRepository interface {
	Create(movimiento *entity.MovimientoInventario) error
	ListByVariante(varianteID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
	// UltimoSaldo devuelve el saldo_despues del asiento más reciente de la
	// variante (0 si no hay asientos).
	UltimoSaldo(varianteID string) (int, error)
	// TotalReservado devuelve las unidades retenidas: suma de reservas menos
	// devoluciones de la variante.
	TotalReservado(varianteID string) (int, error)
}
