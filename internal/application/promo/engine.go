package promo

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// Linea ítem del carrito/pedido tal como lo ve el motor de promociones:
// variante, cantidad y precio unitario vigente.
type Linea struct {
	VarianteID     string
	ProductoID     string
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

// Subtotal precio unitario × cantidad, sin descuentos.
func (l Linea) Subtotal() decimal.Decimal {
	return l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// PromocionVigente promoción con sus objetivos ya resueltos. Una promoción sin
// objetivos aplica al pedido completo.
type PromocionVigente struct {
	Promocion entity.Promocion
	Objetivos []entity.PromocionProducto
}

// ItemDescuento descuento ganador sobre una línea, con los datos que el
// checkout congela en el snapshot del pedido.
type ItemDescuento struct {
	VarianteID      string
	PromocionID     string
	NombrePromocion string
	Monto           decimal.Decimal
}

// Contribucion aporte monetario total de una promoción al pedido, para el
// registro de auditoría (promociones_aplicadas).
type Contribucion struct {
	PromocionID     string
	NombrePromocion string
	Monto           decimal.Decimal
}

// Resultado salida de la evaluación. PorItem está alineado por índice con las
// líneas de entrada; nil en las líneas sin descuento. CuponRechazado se reporta
// como dato, no como error: la evaluación del resto de promociones sigue válida
// y la UI decide cómo avisar.
type Resultado struct {
	PorItem        []*ItemDescuento
	DescuentoOrden decimal.Decimal
	Contribuciones []Contribucion
	CuponRechazado bool
}

// TotalDescuento suma de descuentos por ítem más el descuento a nivel pedido.
func (r Resultado) TotalDescuento() decimal.Decimal {
	total := r.DescuentoOrden
	for _, d := range r.PorItem {
		if d != nil {
			total = total.Add(d.Monto)
		}
	}
	return total
}

// Evaluate evalúa las promociones contra las líneas del pedido. Es una función
// pura: mismas entradas (líneas, promociones, cupón, subtotal, now) producen
// siempre el mismo resultado, sin estado oculto.
//
// Reglas:
//   - Solo participan promociones vigentes en now; las de cupón solo si el
//     código suministrado coincide. min_compra excluye contra el subtotal.
//   - Por línea no se acumulan promociones: gana la de mayor descuento y ante
//     empate la de menor ID.
//   - Las promociones sin objetivos descuentan sobre el subtotal del pedido.
//   - El control de max_usos es del llamador (CountUsos antes de confirmar);
//     el motor no lleva contadores.
func Evaluate(promos []PromocionVigente, lineas []Linea, codigoCupon string, subtotal decimal.Decimal, now time.Time) Resultado {
	res := Resultado{
		PorItem:        make([]*ItemDescuento, len(lineas)),
		DescuentoOrden: decimal.Zero,
	}

	cuponAtendido := false
	aportes := map[string]*Contribucion{}

	// Orden estable por ID para que los empates se resuelvan siempre igual.
	ordenadas := append([]PromocionVigente(nil), promos...)
	sort.SliceStable(ordenadas, func(i, j int) bool {
		return ordenadas[i].Promocion.ID < ordenadas[j].Promocion.ID
	})

	for _, pv := range ordenadas {
		p := pv.Promocion
		if !p.VigenteEn(now) {
			continue
		}
		if p.Codigo != nil {
			if codigoCupon == "" || *p.Codigo != codigoCupon {
				continue
			}
			cuponAtendido = true
		}
		if p.MinCompra != nil && subtotal.LessThan(*p.MinCompra) {
			continue
		}

		if len(pv.Objetivos) == 0 {
			monto := descuentoSobre(p, subtotal)
			if monto.IsPositive() {
				res.DescuentoOrden = res.DescuentoOrden.Add(monto)
				acumular(aportes, p, monto)
			}
			continue
		}

		for i := range lineas {
			monto := descuentoLinea(p, pv.Objetivos, lineas, i)
			if !monto.IsPositive() {
				continue
			}
			actual := res.PorItem[i]
			if actual == nil || monto.GreaterThan(actual.Monto) {
				res.PorItem[i] = &ItemDescuento{
					VarianteID:      lineas[i].VarianteID,
					PromocionID:     p.ID,
					NombrePromocion: p.Nombre,
					Monto:           monto,
				}
			}
			// Empate en monto: como las promociones se recorren en orden de ID
			// ascendente, la ganadora previa (menor ID) se conserva.
		}
	}

	for _, d := range res.PorItem {
		if d != nil {
			if p, ok := buscarPromo(ordenadas, d.PromocionID); ok {
				acumular(aportes, p, d.Monto)
			}
		}
	}

	for _, c := range aportes {
		res.Contribuciones = append(res.Contribuciones, *c)
	}
	sort.Slice(res.Contribuciones, func(i, j int) bool {
		return res.Contribuciones[i].PromocionID < res.Contribuciones[j].PromocionID
	})

	res.CuponRechazado = codigoCupon != "" && !cuponAtendido
	return res
}

// descuentoLinea descuento que la promoción produce sobre la línea idx, o cero
// si sus objetivos no la alcanzan.
func descuentoLinea(p entity.Promocion, objetivos []entity.PromocionProducto, lineas []Linea, idx int) decimal.Decimal {
	linea := lineas[idx]
	switch p.TipoDescuento {
	case entity.DescuentoPorcentaje, entity.DescuentoMontoFijo:
		for _, obj := range objetivos {
			if coincide(obj.Objetivo, linea) {
				return descuentoSobre(p, linea.Subtotal())
			}
		}
		return decimal.Zero
	case entity.DescuentoXPorY:
		return descuentoXPorY(objetivos, lineas, idx)
	default:
		return decimal.Zero
	}
}

// descuentoSobre aplica porcentaje o monto fijo sobre una base, topado a la base.
func descuentoSobre(p entity.Promocion, base decimal.Decimal) decimal.Decimal {
	var monto decimal.Decimal
	switch p.TipoDescuento {
	case entity.DescuentoPorcentaje:
		monto = base.Mul(p.ValorDescuento).Div(cien).Round(2)
	case entity.DescuentoMontoFijo:
		monto = p.ValorDescuento.Round(2)
	default:
		return decimal.Zero
	}
	if monto.GreaterThan(base) {
		return base
	}
	return monto
}

// descuentoXPorY calcula las unidades de regalo que la línea idx recibe: por
// cada múltiplo completo de cantidad_requerida del disparador se regalan
// cantidad_gratis unidades del objetivo de regalo, valoradas a su precio en el
// carrito. Múltiplos parciales no regalan nada; si el regalo no está en el
// carrito no hay precio que descontar.
func descuentoXPorY(objetivos []entity.PromocionProducto, lineas []Linea, idx int) decimal.Decimal {
	linea := lineas[idx]
	total := decimal.Zero
	for _, obj := range objetivos {
		if obj.CantidadRequerida <= 0 || obj.CantidadGratis <= 0 {
			continue
		}
		regalo := obj.Objetivo
		if obj.ObjetivoGratis != nil {
			regalo = *obj.ObjetivoGratis
		}
		if !coincide(regalo, linea) {
			continue // el descuento se asienta sobre la línea del regalo
		}
		// Las unidades disparadoras pueden estar en otra línea del carrito.
		disparadas := 0
		for _, l := range lineas {
			if coincide(obj.Objetivo, l) {
				disparadas += l.Cantidad
			}
		}
		multiplos := disparadas / obj.CantidadRequerida
		if multiplos == 0 {
			continue
		}
		gratis := multiplos * obj.CantidadGratis
		if gratis > linea.Cantidad {
			gratis = linea.Cantidad
		}
		total = total.Add(linea.PrecioUnitario.Mul(decimal.NewFromInt(int64(gratis))))
	}
	if total.GreaterThan(linea.Subtotal()) {
		return linea.Subtotal()
	}
	return total.Round(2)
}

func coincide(obj entity.ObjetivoPromocion, l Linea) bool {
	switch obj.Tipo {
	case entity.ObjetivoProducto:
		return obj.ID == l.ProductoID
	case entity.ObjetivoVariante:
		return obj.ID == l.VarianteID
	default:
		return false
	}
}

func acumular(aportes map[string]*Contribucion, p entity.Promocion, monto decimal.Decimal) {
	if c, ok := aportes[p.ID]; ok {
		c.Monto = c.Monto.Add(monto)
		return
	}
	aportes[p.ID] = &Contribucion{PromocionID: p.ID, NombrePromocion: p.Nombre, Monto: monto}
}

func buscarPromo(promos []PromocionVigente, id string) (entity.Promocion, bool) {
	for _, pv := range promos {
		if pv.Promocion.ID == id {
			return pv.Promocion, true
		}
	}
	return entity.Promocion{}, false
}
