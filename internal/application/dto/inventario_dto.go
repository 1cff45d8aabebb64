package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// RecibirLoteRequest entrada para un ingreso directo de mercadería (sin compra).
type RecibirLoteRequest struct {
	VarianteID              string          `json:"variante_id" validate:"required"`
	ProductoID              string          `json:"producto_id" validate:"required"`
	ProveedorID             *string         `json:"proveedor_id"`
	CodigoLote              string          `json:"codigo_lote"`
	Presentacion            string          `json:"presentacion"`
	UnidadesPorPresentacion int             `json:"unidades_por_presentacion"`
	Cantidad                int             `json:"cantidad" validate:"required,min=1"`
	CostoTotal              decimal.Decimal `json:"costo_total"`
	FechaVencimiento        *time.Time      `json:"fecha_vencimiento"`
	AlmacenID               *int            `json:"almacen_id"`
}

// DescontarRequest entrada para una salida FEFO de stock.
type DescontarRequest struct {
	VarianteID string `json:"variante_id" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
	Motivo     string `json:"motivo"`
}

// AjustarRequest entrada para un ajuste manual de stock (merma, conteo físico).
// Delta es con signo: negativo descuenta, positivo repone.
type AjustarRequest struct {
	VarianteID string `json:"variante_id" validate:"required"`
	Delta      int    `json:"delta" validate:"required"`
	Motivo     string `json:"motivo" validate:"required"`
}

// ReservarRequest entrada para reservar o liberar unidades de una variante.
type ReservarRequest struct {
	VarianteID string `json:"variante_id" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// LoteResponse salida de un lote.
type LoteResponse struct {
	ID                 string          `json:"id"`
	CompraID           *string         `json:"compra_id,omitempty"`
	ProveedorID        *string         `json:"proveedor_id,omitempty"`
	ProductoID         string          `json:"producto_id"`
	VarianteID         string          `json:"variante_id"`
	CodigoLote         string          `json:"codigo_lote,omitempty"`
	CantidadInicial    int             `json:"cantidad_inicial"`
	CantidadDisponible int             `json:"cantidad_disponible"`
	CostoUnitario      decimal.Decimal `json:"costo_unitario"`
	FechaIngreso       time.Time       `json:"fecha_ingreso"`
	FechaVencimiento   *time.Time      `json:"fecha_vencimiento,omitempty"`
}

// LoteFromEntity mapea la entidad a su respuesta.
func LoteFromEntity(l *entity.Lote) LoteResponse {
	return LoteResponse{
		ID:                 l.ID,
		CompraID:           l.CompraID,
		ProveedorID:        l.ProveedorID,
		ProductoID:         l.ProductoID,
		VarianteID:         l.VarianteID,
		CodigoLote:         l.CodigoLote,
		CantidadInicial:    l.CantidadInicial,
		CantidadDisponible: l.CantidadDisponible,
		CostoUnitario:      l.CostoUnitario,
		FechaIngreso:       l.FechaIngreso,
		FechaVencimiento:   l.FechaVencimiento,
	}
}

// MovimientoResponse asiento del libro de inventario.
type MovimientoResponse struct {
	ID            string           `json:"id"`
	LoteID        *string          `json:"lote_id,omitempty"`
	VarianteID    string           `json:"variante_id"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	SaldoDespues  int              `json:"saldo_despues"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario,omitempty"`
	TotalCosto    *decimal.Decimal `json:"total_costo,omitempty"`
	Motivo        string           `json:"motivo,omitempty"`
	Fecha         time.Time        `json:"fecha"`
}

// MovimientoFromEntity mapea la entidad a su respuesta.
func MovimientoFromEntity(m *entity.MovimientoInventario) MovimientoResponse {
	return MovimientoResponse{
		ID:            m.ID,
		LoteID:        m.LoteID,
		VarianteID:    m.VarianteID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		SaldoDespues:  m.SaldoDespues,
		CostoUnitario: m.CostoUnitario,
		TotalCosto:    m.TotalCosto,
		Motivo:        m.Motivo,
		Fecha:         m.Fecha,
	}
}

// SaldoResponse stock físico, reservado y vendible de una variante.
type SaldoResponse struct {
	VarianteID string `json:"variante_id"`
	Disponible int    `json:"disponible"`
	Reservado  int    `json:"reservado"`
	Vendible   int    `json:"vendible"`
}
