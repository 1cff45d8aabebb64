package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// AgregarItemRequest entrada para agregar una variante al carrito.
type AgregarItemRequest struct {
	VarianteID string `json:"variante_id" validate:"required"`
	Cantidad   int    `json:"cantidad" validate:"required,min=1"`
}

// AplicarCuponRequest entrada para registrar un código de cupón en el carrito.
type AplicarCuponRequest struct {
	Codigo string `json:"codigo" validate:"required"`
}

// CarritoItemResponse línea del carrito con su precio congelado.
type CarritoItemResponse struct {
	ID             string          `json:"id"`
	VarianteID     string          `json:"variante_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CarritoResponse carrito con sus líneas.
type CarritoResponse struct {
	ID          string                `json:"id"`
	UsuarioID   *string               `json:"usuario_id,omitempty"`
	SessionID   string                `json:"session_id,omitempty"`
	Activo      bool                  `json:"activo"`
	CuponCodigo string                `json:"cupon_codigo,omitempty"`
	Items       []CarritoItemResponse `json:"items"`
}

// CarritoFromEntity mapea el carrito y sus líneas a la respuesta.
func CarritoFromEntity(c *entity.Carrito, items []*entity.CarritoItem) CarritoResponse {
	out := CarritoResponse{
		ID:          c.ID,
		UsuarioID:   c.UsuarioID,
		SessionID:   c.SessionID,
		Activo:      c.Activo,
		CuponCodigo: c.CuponCodigo,
		Items:       []CarritoItemResponse{},
	}
	for _, it := range items {
		out.Items = append(out.Items, CarritoItemResponse{
			ID:             it.ID,
			VarianteID:     it.VarianteID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitarioSnapshot,
		})
	}
	return out
}

// CheckoutRequest entrada para convertir el carrito en pedido. CiudadID vacío
// significa retiro en tienda.
type CheckoutRequest struct {
	CarritoID      string `json:"carrito_id" validate:"required"`
	MetodoPago     string `json:"metodo_pago" validate:"required"`
	DireccionEnvio string `json:"direccion_envio"`
	CiudadID       string `json:"ciudad_id"`
	Nota           string `json:"nota"`
}

// PedidoItemResponse línea del pedido con su trazabilidad de descuento.
type PedidoItemResponse struct {
	ID             string          `json:"id"`
	VarianteID     string          `json:"variante_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DescuentoItem  decimal.Decimal `json:"descuento_item"`
	PromocionID    *string         `json:"promocion_id,omitempty"`
	TotalNeto      decimal.Decimal `json:"total_neto"`
}

// PedidoResponse pedido con sus líneas.
type PedidoResponse struct {
	ID             string               `json:"id"`
	Codigo         string               `json:"codigo"`
	UsuarioID      string               `json:"usuario_id"`
	FechaPedido    time.Time            `json:"fecha_pedido"`
	Estado         string               `json:"estado"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Descuento      decimal.Decimal      `json:"descuento"`
	Impuestos      decimal.Decimal      `json:"impuestos"`
	CostoEnvio     decimal.Decimal      `json:"costo_envio"`
	Total          decimal.Decimal      `json:"total"`
	MetodoPago     string               `json:"metodo_pago"`
	DireccionEnvio string               `json:"direccion_envio,omitempty"`
	Nota           string               `json:"nota,omitempty"`
	CuponRechazado bool                 `json:"cupon_rechazado,omitempty"`
	Items          []PedidoItemResponse `json:"items,omitempty"`
}

// PedidoFromEntity mapea el pedido y sus líneas a la respuesta.
func PedidoFromEntity(p *entity.Pedido, items []*entity.PedidoItem) PedidoResponse {
	out := PedidoResponse{
		ID:             p.ID,
		Codigo:         p.Codigo,
		UsuarioID:      p.UsuarioID,
		FechaPedido:    p.FechaPedido,
		Estado:         p.Estado,
		Subtotal:       p.Subtotal,
		Descuento:      p.Descuento,
		Impuestos:      p.Impuestos,
		CostoEnvio:     p.CostoEnvio,
		Total:          p.Total,
		MetodoPago:     p.MetodoPago,
		DireccionEnvio: p.DireccionEnvio,
		Nota:           p.Nota,
	}
	for _, it := range items {
		out.Items = append(out.Items, PedidoItemResponse{
			ID:             it.ID,
			VarianteID:     it.VarianteID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
			DescuentoItem:  it.DescuentoItem,
			PromocionID:    it.PromocionID,
			TotalNeto:      it.TotalNeto,
		})
	}
	return out
}

// PedidoListResponse lista paginada de pedidos.
type PedidoListResponse struct {
	Items []PedidoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// RegistrarPagoRequest constancia de pago declarada por el cliente.
type RegistrarPagoRequest struct {
	PedidoID          string `json:"pedido_id" validate:"required"`
	Metodo            string `json:"metodo" validate:"required"`
	ComprobanteURL    string `json:"comprobante_url"`
	ReferenciaExterna string `json:"referencia_externa"`
}

// PagoResponse salida de un pago.
type PagoResponse struct {
	ID              string          `json:"id"`
	PedidoID        string          `json:"pedido_id"`
	Metodo          string          `json:"metodo"`
	Monto           decimal.Decimal `json:"monto"`
	FechaPago       time.Time       `json:"fecha_pago"`
	Estado          string          `json:"estado"`
	ComprobanteURL  string          `json:"comprobante_url,omitempty"`
	FechaValidacion *time.Time      `json:"fecha_validacion,omitempty"`
}

// PagoFromEntity mapea la entidad a su respuesta.
func PagoFromEntity(p *entity.Pago) PagoResponse {
	return PagoResponse{
		ID:              p.ID,
		PedidoID:        p.PedidoID,
		Metodo:          p.Metodo,
		Monto:           p.Monto,
		FechaPago:       p.FechaPago,
		Estado:          p.Estado,
		ComprobanteURL:  p.ComprobanteURL,
		FechaValidacion: p.FechaValidacion,
	}
}
