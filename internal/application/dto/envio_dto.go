package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// CrearTarifaRequest entrada para crear una tarifa de envío por ciudad y tramo
// de peso. Límites nulos = sin tope en ese extremo.
type CrearTarifaRequest struct {
	CiudadID  string           `json:"ciudad_id" validate:"required"`
	EmpresaID string           `json:"empresa_id" validate:"required"`
	PesoMinKg *decimal.Decimal `json:"peso_min_kg"`
	PesoMaxKg *decimal.Decimal `json:"peso_max_kg"`
	Costo     decimal.Decimal  `json:"costo"`
}

// TarifaResponse salida de una tarifa de envío.
type TarifaResponse struct {
	ID        string           `json:"id"`
	CiudadID  string           `json:"ciudad_id"`
	EmpresaID string           `json:"empresa_id"`
	PesoMinKg *decimal.Decimal `json:"peso_min_kg,omitempty"`
	PesoMaxKg *decimal.Decimal `json:"peso_max_kg,omitempty"`
	Costo     decimal.Decimal  `json:"costo"`
	Activo    bool             `json:"activo"`
}

// TarifaFromEntity mapea la entidad a su respuesta.
func TarifaFromEntity(t *entity.TarifaEnvio) TarifaResponse {
	return TarifaResponse{
		ID:        t.ID,
		CiudadID:  t.CiudadID,
		EmpresaID: t.EmpresaID,
		PesoMinKg: t.PesoMinKg,
		PesoMaxKg: t.PesoMaxKg,
		Costo:     t.Costo,
		Activo:    t.Activo,
	}
}

// CrearEmpresaEnvioRequest entrada para registrar un courier.
type CrearEmpresaEnvioRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=200"`
	Telefono    string `json:"telefono"`
	APIEndpoint string `json:"api_endpoint"`
}

// EmpresaEnvioResponse salida de un courier.
type EmpresaEnvioResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Telefono    string `json:"telefono,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty"`
}

// EmpresaEnvioFromEntity mapea la entidad a su respuesta.
func EmpresaEnvioFromEntity(e *entity.EmpresaEnvio) EmpresaEnvioResponse {
	return EmpresaEnvioResponse{ID: e.ID, Nombre: e.Nombre, Telefono: e.Telefono, APIEndpoint: e.APIEndpoint}
}

// CrearRegionRequest entrada para registrar una región.
type CrearRegionRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

// CrearCiudadRequest entrada para registrar una ciudad.
type CrearCiudadRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	RegionID string `json:"region_id" validate:"required"`
}

// CiudadResponse salida de una ciudad.
type CiudadResponse struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	RegionID string `json:"region_id"`
}

// EnvioResponse estado del despacho de un pedido.
type EnvioResponse struct {
	ID                   string          `json:"id"`
	PedidoID             string          `json:"pedido_id"`
	EmpresaID            *string         `json:"empresa_id,omitempty"`
	Direccion            string          `json:"direccion,omitempty"`
	Tracking             string          `json:"tracking,omitempty"`
	CostoEnvio           decimal.Decimal `json:"costo_envio"`
	EstadoEnvio          string          `json:"estado_envio"`
	FechaEnvio           *time.Time      `json:"fecha_envio,omitempty"`
	FechaEntregaEstimada *time.Time      `json:"fecha_entrega_estimada,omitempty"`
	FechaEntregaReal     *time.Time      `json:"fecha_entrega_real,omitempty"`
}

// EnvioFromEntity mapea la entidad a su respuesta.
func EnvioFromEntity(e *entity.Envio) EnvioResponse {
	return EnvioResponse{
		ID:                   e.ID,
		PedidoID:             e.PedidoID,
		EmpresaID:            e.EmpresaID,
		Direccion:            e.Direccion,
		Tracking:             e.Tracking,
		CostoEnvio:           e.CostoEnvio,
		EstadoEnvio:          e.EstadoEnvio,
		FechaEnvio:           e.FechaEnvio,
		FechaEntregaEstimada: e.FechaEntregaEstimada,
		FechaEntregaReal:     e.FechaEntregaReal,
	}
}

// CotizarRequest entrada para cotizar el envío de un peso a una ciudad.
type CotizarRequest struct {
	CiudadID string          `json:"ciudad_id" validate:"required"`
	PesoKg   decimal.Decimal `json:"peso_kg"`
}

// DespacharRequest entrada para despachar un pedido con un courier.
type DespacharRequest struct {
	EmpresaID       string     `json:"empresa_id" validate:"required"`
	Tracking        string     `json:"tracking"`
	EntregaEstimada *time.Time `json:"entrega_estimada"`
}
