package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedor proveedor de mercadería.
type Proveedor struct {
	ID        string
	Nombre    string
	RUC       string
	Contacto  string
	Telefono  string
	Email     string
	Direccion string
}

// Estados de una compra.
const (
	CompraPendiente = "pendiente"
	CompraRecibida  = "recibido"
	CompraCancelada = "cancelado"
)

// Compra orden de compra a un proveedor. Al marcarse como recibida genera
// los lotes y movimientos de entrada correspondientes.
type Compra struct {
	ID          string
	ProveedorID string
	Codigo      string // único
	FechaCompra time.Time
	Subtotal    decimal.Decimal
	Impuestos   decimal.Decimal
	Total       decimal.Decimal
	Estado      string
	Nota        string
}

// CompraItem línea de una compra. Las cantidades se manejan en presentaciones
// (cajas, packs) y en unidades sueltas; cantidad_unidades es la que ingresa al lote.
type CompraItem struct {
	ID                         string
	CompraID                   string
	ProductoID                 string
	VarianteID                 *string
	Presentacion               string
	UnidadesPorPresentacion    int
	CantidadPresentaciones     int
	CantidadUnidades           int
	PrecioUnitarioPresentacion decimal.Decimal
	PrecioUnitarioUnidad       decimal.Decimal
	Subtotal                   decimal.Decimal
}
