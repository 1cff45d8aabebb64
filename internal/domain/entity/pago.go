package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados (verificación manual; no hay pasarela integrada).
const (
	PagoYape          = "yape"
	PagoPlin          = "plin"
	PagoTransferencia = "transferencia"
	PagoContraEntrega = "contraentrega"
	PagoPOS           = "pos"
)

// Estados de un pago.
const (
	PagoPendiente  = "pendiente"
	PagoConfirmado = "confirmado"
	PagoRechazado  = "rechazado"
)

// Pago registro de pago de un pedido, verificado manualmente por un operador.
type Pago struct {
	ID                   string
	PedidoID             string
	Metodo               string
	Monto                decimal.Decimal
	FechaPago            time.Time
	Estado               string
	ComprobanteURL       string
	ReferenciaExterna    string
	UsuarioVerificadorID *string
	FechaValidacion      *time.Time
}
