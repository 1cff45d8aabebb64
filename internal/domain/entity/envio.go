package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmpresaEnvio courier con el que se despachan pedidos.
type EmpresaEnvio struct {
	ID          string
	Nombre      string
	Telefono    string
	APIEndpoint string
}

// Region región geográfica (primer nivel).
type Region struct {
	ID     string
	Nombre string
}

// Ciudad ciudad dentro de una región.
type Ciudad struct {
	ID       string
	Nombre   string
	RegionID string
}

// TarifaEnvio costo de envío por ciudad, courier y tramo de peso.
// PesoMinKg/PesoMaxKg nil = sin límite en ese extremo.
type TarifaEnvio struct {
	ID                 string
	CiudadID           string
	EmpresaID          string
	PesoMinKg          *decimal.Decimal
	PesoMaxKg          *decimal.Decimal
	Costo              decimal.Decimal
	Activo             bool
	FechaActualizacion time.Time
}

// Estados de un envío.
const (
	EnvioPendiente = "pendiente"
	EnvioTransito  = "en_transito"
	EnvioEntregado = "entregado"
	EnvioDevuelto  = "devuelto"
)

// Envio despacho de un pedido con una empresa de envío.
type Envio struct {
	ID                   string
	PedidoID             string
	EmpresaID            *string
	CiudadID             *string
	Direccion            string
	Tracking             string
	CostoEnvio           decimal.Decimal
	EstadoEnvio          string
	FechaEnvio           *time.Time
	FechaEntregaEstimada *time.Time
	FechaEntregaReal     *time.Time
}
