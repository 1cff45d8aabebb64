package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Carrito carrito de compras de un usuario registrado o una sesión anónima.
// El cupón y el descuento persistidos son informativos para la UI; al finalizar
// el pedido siempre se reevalúa contra las promociones vigentes.
type Carrito struct {
	ID                      string
	UsuarioID               *string
	SessionID               string
	FechaCreacion           time.Time
	FechaActualizacion      *time.Time
	Activo                  bool
	CuponCodigo             string
	DescuentoGlobalAplicado decimal.Decimal
}

// CarritoItem línea del carrito con el precio unitario congelado al agregarla.
type CarritoItem struct {
	ID                     string
	CarritoID              string
	VarianteID             string
	Cantidad               int
	PrecioUnitarioSnapshot decimal.Decimal
}
