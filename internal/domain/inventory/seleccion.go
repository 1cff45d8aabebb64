package inventory

import (
	"sort"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// Consumo plan de descuento sobre un lote concreto.
type Consumo struct {
	Lote     *entity.Lote
	Cantidad int
}

// OrdenarParaSalida ordena los lotes de una variante según la política de consumo:
// primero los perecibles en orden ascendente de fecha de vencimiento (FEFO),
// después los no perecibles en orden ascendente de fecha de ingreso (FIFO).
// El orden es determinista; a igual fecha desempata el ID del lote.
func OrdenarParaSalida(lotes []*entity.Lote) []*entity.Lote {
	ordenados := make([]*entity.Lote, len(lotes))
	copy(ordenados, lotes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		a, b := ordenados[i], ordenados[j]
		switch {
		case a.FechaVencimiento != nil && b.FechaVencimiento == nil:
			return true
		case a.FechaVencimiento == nil && b.FechaVencimiento != nil:
			return false
		case a.FechaVencimiento != nil && b.FechaVencimiento != nil:
			if !a.FechaVencimiento.Equal(*b.FechaVencimiento) {
				return a.FechaVencimiento.Before(*b.FechaVencimiento)
			}
		default:
			if !a.FechaIngreso.Equal(b.FechaIngreso) {
				return a.FechaIngreso.Before(b.FechaIngreso)
			}
		}
		if !a.FechaIngreso.Equal(b.FechaIngreso) {
			return a.FechaIngreso.Before(b.FechaIngreso)
		}
		return a.ID < b.ID
	})
	return ordenados
}

// PlanDeSalida calcula qué lotes consumir para descontar cantidad unidades.
// Es todo-o-nada: si el total disponible no alcanza, devuelve (nil, false) sin
// plan parcial. No muta los lotes; el caller aplica el plan dentro de su transacción.
func PlanDeSalida(lotes []*entity.Lote, cantidad int) ([]Consumo, bool) {
	if cantidad <= 0 {
		return nil, false
	}
	var disponible int
	for _, l := range lotes {
		disponible += l.CantidadDisponible
	}
	if disponible < cantidad {
		return nil, false
	}

	var plan []Consumo
	restante := cantidad
	for _, l := range OrdenarParaSalida(lotes) {
		if restante == 0 {
			break
		}
		if l.CantidadDisponible <= 0 {
			continue
		}
		tomar := l.CantidadDisponible
		if tomar > restante {
			tomar = restante
		}
		plan = append(plan, Consumo{Lote: l, Cantidad: tomar})
		restante -= tomar
	}
	return plan, true
}
