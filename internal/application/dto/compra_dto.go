package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// CrearProveedorRequest entrada para registrar un proveedor.
type CrearProveedorRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	RUC       string `json:"ruc"`
	Contacto  string `json:"contacto"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	RUC       string `json:"ruc,omitempty"`
	Contacto  string `json:"contacto,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// ProveedorFromEntity mapea la entidad a su respuesta.
func ProveedorFromEntity(p *entity.Proveedor) ProveedorResponse {
	return ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		RUC:       p.RUC,
		Contacto:  p.Contacto,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
	}
}

// CompraItemRequest línea de una compra nueva. Las cantidades se declaran en
// presentaciones (cajas, packs) más unidades sueltas.
type CompraItemRequest struct {
	ProductoID                 string          `json:"producto_id" validate:"required"`
	VarianteID                 *string         `json:"variante_id"`
	Presentacion               string          `json:"presentacion"`
	UnidadesPorPresentacion    int             `json:"unidades_por_presentacion"`
	CantidadPresentaciones     int             `json:"cantidad_presentaciones"`
	UnidadesSueltas            int             `json:"unidades_sueltas"`
	PrecioUnitarioPresentacion decimal.Decimal `json:"precio_unitario_presentacion"`
}

// CrearCompraRequest entrada para registrar una orden de compra.
type CrearCompraRequest struct {
	ProveedorID string              `json:"proveedor_id" validate:"required"`
	FechaCompra time.Time           `json:"fecha_compra"`
	Nota        string              `json:"nota"`
	Items       []CompraItemRequest `json:"items" validate:"required,min=1"`
}

// RecibirCompraRequest entrada para marcar la compra como recibida.
// FechaVencimiento mapea item_id → fecha de vencimiento del lote generado.
type RecibirCompraRequest struct {
	FechaVencimiento map[string]*time.Time `json:"fecha_vencimiento"`
}

// CompraResponse salida de una compra.
type CompraResponse struct {
	ID          string          `json:"id"`
	ProveedorID string          `json:"proveedor_id"`
	Codigo      string          `json:"codigo"`
	FechaCompra time.Time       `json:"fecha_compra"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Impuestos   decimal.Decimal `json:"impuestos"`
	Total       decimal.Decimal `json:"total"`
	Estado      string          `json:"estado"`
	Nota        string          `json:"nota,omitempty"`
}

// CompraItemResponse línea de una compra.
type CompraItemResponse struct {
	ID                      string          `json:"id"`
	ProductoID              string          `json:"producto_id"`
	VarianteID              *string         `json:"variante_id,omitempty"`
	Presentacion            string          `json:"presentacion,omitempty"`
	UnidadesPorPresentacion int             `json:"unidades_por_presentacion"`
	CantidadPresentaciones  int             `json:"cantidad_presentaciones"`
	CantidadUnidades        int             `json:"cantidad_unidades"`
	PrecioUnitarioUnidad    decimal.Decimal `json:"precio_unitario_unidad"`
	Subtotal                decimal.Decimal `json:"subtotal"`
}

// CompraDetalleResponse compra con sus líneas.
type CompraDetalleResponse struct {
	CompraResponse
	Items []CompraItemResponse `json:"items"`
}

// CompraDetalleFromEntity mapea la compra y sus líneas a la respuesta.
func CompraDetalleFromEntity(c *entity.Compra, items []*entity.CompraItem) CompraDetalleResponse {
	out := CompraDetalleResponse{CompraResponse: CompraFromEntity(c), Items: []CompraItemResponse{}}
	for _, it := range items {
		out.Items = append(out.Items, CompraItemResponse{
			ID:                      it.ID,
			ProductoID:              it.ProductoID,
			VarianteID:              it.VarianteID,
			Presentacion:            it.Presentacion,
			UnidadesPorPresentacion: it.UnidadesPorPresentacion,
			CantidadPresentaciones:  it.CantidadPresentaciones,
			CantidadUnidades:        it.CantidadUnidades,
			PrecioUnitarioUnidad:    it.PrecioUnitarioUnidad,
			Subtotal:                it.Subtotal,
		})
	}
	return out
}

// CompraFromEntity mapea la entidad a su respuesta.
func CompraFromEntity(c *entity.Compra) CompraResponse {
	return CompraResponse{
		ID:          c.ID,
		ProveedorID: c.ProveedorID,
		Codigo:      c.Codigo,
		FechaCompra: c.FechaCompra,
		Subtotal:    c.Subtotal,
		Impuestos:   c.Impuestos,
		Total:       c.Total,
		Estado:      c.Estado,
		Nota:        c.Nota,
	}
}
