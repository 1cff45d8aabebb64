package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote partida de una variante ingresada al inventario en un momento dado.
// CantidadInicial es inmutable; CantidadDisponible se reduce con cada salida y
// nunca es negativa ni mayor que la inicial. Los lotes agotados no se borran:
// quedan con cantidad_disponible = 0 para auditoría.
type Lote struct {
	ID                      string
	CompraID                *string // la compra puede eliminarse; el lote histórico sobrevive
	ProveedorID             *string
	ProductoID              string
	VarianteID              string
	CodigoLote              string
	Presentacion            string
	UnidadesPorPresentacion int
	CantidadInicial         int
	CantidadDisponible      int
	CostoTotal              decimal.Decimal
	CostoUnitario           decimal.Decimal
	FechaIngreso            time.Time
	FechaVencimiento        *time.Time // nil = no perecible
	AlmacenID               *int
}

// Agotado indica si el lote ya no tiene unidades disponibles.
func (l *Lote) Agotado() bool {
	return l.CantidadDisponible <= 0
}
