package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// EmitirComprobanteRequest entrada para emitir boleta o factura de un pedido.
type EmitirComprobanteRequest struct {
	PedidoID string `json:"pedido_id" validate:"required"`
	Tipo     string `json:"tipo" validate:"required,oneof=boleta factura"`
}

// ComprobanteResponse salida de un comprobante emitido.
type ComprobanteResponse struct {
	ID           string          `json:"id"`
	PedidoID     string          `json:"pedido_id"`
	Tipo         string          `json:"tipo"`
	Numero       string          `json:"numero"`
	FechaEmision time.Time       `json:"fecha_emision"`
	MontoTotal   decimal.Decimal `json:"monto_total"`
	Impuesto     decimal.Decimal `json:"impuesto"`
	PDFURL       string          `json:"pdf_url,omitempty"`
	Estado       string          `json:"estado"`
	CodigoHash   string          `json:"codigo_hash,omitempty"`
}

// ComprobanteFromEntity mapea la entidad a su respuesta.
func ComprobanteFromEntity(c *entity.Comprobante) ComprobanteResponse {
	return ComprobanteResponse{
		ID:           c.ID,
		PedidoID:     c.PedidoID,
		Tipo:         c.Tipo,
		Numero:       c.Numero,
		FechaEmision: c.FechaEmision,
		MontoTotal:   c.MontoTotal,
		Impuesto:     c.Impuesto,
		PDFURL:       c.PDFURL,
		Estado:       c.Estado,
		CodigoHash:   c.CodigoHash,
	}
}
