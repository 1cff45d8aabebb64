package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada    = "entrada"
	MovimientoSalida     = "salida"
	MovimientoAjuste     = "ajuste"
	MovimientoReserva    = "reserva"
	MovimientoDevolucion = "devolucion"
)

// MovimientoInventario asiento inmutable del libro de inventario. Nunca se
// modifica ni borra después de creado. Cantidad es con signo (entrada positiva,
// salida negativa); SaldoDespues es el stock físico total de la variante
// inmediatamente después del asiento. Para una variante, ordenados por fecha:
// saldo_despues[i] = saldo_despues[i-1] + delta_fisico(movimiento[i]),
// donde reserva/devolucion tienen delta físico cero.
type MovimientoInventario struct {
	ID            string
	LoteID        *string // nil en ajustes y reservas sin lote
	VarianteID    string
	Tipo          string
	Cantidad      int // con signo
	SaldoDespues  int
	CostoUnitario *decimal.Decimal
	TotalCosto    *decimal.Decimal
	Motivo        string
	UsuarioID     *string
	Fecha         time.Time
}

// DeltaFisico devuelve cuánto altera este movimiento el stock físico de la
// variante. Reservas y devoluciones son retenciones lógicas: no lo alteran.
func (m *MovimientoInventario) DeltaFisico() int {
	switch m.Tipo {
	case MovimientoReserva, MovimientoDevolucion:
		return 0
	default:
		return m.Cantidad
	}
}
