package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	PedidoPendiente  = "pendiente"
	PedidoPagado     = "pagado"
	PedidoPreparando = "preparando"
	PedidoEnviado    = "enviado"
	PedidoEntregado  = "entregado"
	PedidoCancelado  = "cancelado"
)

// Pedido orden de venta. Descuento es el total del pedido: suma de los
// descuentos por línea más los descuentos a nivel de pedido (cupones globales).
type Pedido struct {
	ID             string
	UsuarioID      string
	Codigo         string // único
	FechaPedido    time.Time
	Estado         string
	Subtotal       decimal.Decimal
	Descuento      decimal.Decimal
	Impuestos      decimal.Decimal
	CostoEnvio     decimal.Decimal
	Total          decimal.Decimal
	MetodoPago     string
	DireccionEnvio string
	Nota           string
}

// EsTerminal indica si el pedido ya no admite cambios (snapshots inmutables).
func (p *Pedido) EsTerminal() bool {
	return p.Estado == PedidoEntregado || p.Estado == PedidoCancelado
}

// PedidoItem línea del pedido con trazabilidad de descuento: descuento_item es
// el monto aplicado a la línea, promocion_aplicada la promo que lo causó y
// total_neto = subtotal - descuento_item.
type PedidoItem struct {
	ID             string
	PedidoID       string
	VarianteID     string
	LoteOrigenID   *string // primer lote consumido por la salida; histórico
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
	DescuentoItem  decimal.Decimal
	PromocionID    *string // qué promo causó el descuento; set-null si se borra
	TotalNeto      decimal.Decimal
}

// PromocionAplicada snapshot de un descuento a nivel de pedido (cupón global).
// NombreSnapshot y ValorDescuentoAplicado son copias desnormalizadas: no cambian
// aunque la promoción se edite o elimine después.
type PromocionAplicada struct {
	ID                     string
	PedidoID               string
	PromocionID            *string // nullable: set-null al borrar la promoción
	NombreSnapshot         string
	ValorDescuentoAplicado decimal.Decimal
}
