package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento de una promoción.
const (
	DescuentoPorcentaje = "porcentaje"
	DescuentoMontoFijo  = "monto_fijo"
	DescuentoXPorY      = "x_por_y" // 2x1, 3x2, etc.
)

// Tipos de objetivo de una promoción (a qué aplica).
const (
	ObjetivoProducto = "producto"
	ObjetivoVariante = "variante"
)

// Promocion regla de descuento con ventana de vigencia. ValorDescuento es el
// porcentaje o el monto fijo; no se usa para x_por_y. FechaFin nil = sin expiración.
type Promocion struct {
	ID             string
	Nombre         string
	Codigo         *string // código de cupón; nil = aplica automáticamente
	TipoDescuento  string
	ValorDescuento decimal.Decimal
	FechaInicio    time.Time
	FechaFin       *time.Time
	Activo         bool
	MinCompra      *decimal.Decimal
	MaxUsos        *int
}

// VigenteEn indica si la promoción está activa y dentro de su ventana de vigencia.
func (p *Promocion) VigenteEn(now time.Time) bool {
	if !p.Activo {
		return false
	}
	if now.Before(p.FechaInicio) {
		return false
	}
	if p.FechaFin != nil && now.After(*p.FechaFin) {
		return false
	}
	return true
}

// ObjetivoPromocion referencia a un producto o a una variante específica.
// Se modela como unión etiquetada para evitar los estados ambiguos
// ambos-nulos/ambos-presentes de un par de FKs anulables.
type ObjetivoPromocion struct {
	Tipo string // producto | variante
	ID   string
}

// Valido verifica que la unión esté bien formada.
func (o ObjetivoPromocion) Valido() bool {
	return (o.Tipo == ObjetivoProducto || o.Tipo == ObjetivoVariante) && o.ID != ""
}

// PromocionProducto vincula una promoción con su objetivo. Para x_por_y además
// indica el producto/variante de regalo y las cantidades requerida y gratis.
type PromocionProducto struct {
	ID                string
	PromocionID       string
	Objetivo          ObjetivoPromocion
	ObjetivoGratis    *ObjetivoPromocion // solo x_por_y; puede ser el mismo objetivo
	CantidadRequerida int                // ej. "compra 2"
	CantidadGratis    int                // ej. "lleva 1"
}
