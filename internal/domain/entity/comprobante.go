package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante de pago.
const (
	ComprobanteBoleta  = "boleta"
	ComprobanteFactura = "factura"
)

// Estados de un comprobante.
const (
	ComprobanteEmitido = "emitida"
	ComprobanteAnulado = "anulada"
)

// Comprobante boleta o factura emitida por un pedido. Numero es serie-correlativo
// único (ej. F001-00000042); CodigoHash es el hash del resumen para verificación.
type Comprobante struct {
	ID           string
	PedidoID     string
	Tipo         string
	Numero       string // único
	FechaEmision time.Time
	MontoTotal   decimal.Decimal
	Impuesto     decimal.Decimal
	PDFURL       string
	Estado       string
	CodigoHash   string
}
