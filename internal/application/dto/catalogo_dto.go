package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// CrearCategoriaRequest entrada para crear una categoría.
type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=1,max=100"`
	Slug        string  `json:"slug"`
	PadreID     *string `json:"padre_id"`
	Descripcion string  `json:"descripcion"`
	ImagenURL   string  `json:"imagen_url"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Slug        string  `json:"slug"`
	PadreID     *string `json:"padre_id,omitempty"`
	Descripcion string  `json:"descripcion,omitempty"`
	ImagenURL   string  `json:"imagen_url,omitempty"`
}

// CategoriaFromEntity mapea la entidad a su respuesta.
func CategoriaFromEntity(c *entity.Categoria) CategoriaResponse {
	return CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Slug:        c.Slug,
		PadreID:     c.PadreID,
		Descripcion: c.Descripcion,
		ImagenURL:   c.ImagenURLBase,
	}
}

// CrearMarcaRequest entrada para crear una marca.
type CrearMarcaRequest struct {
	Nombre     string `json:"nombre" validate:"required,min=1,max=100"`
	ImagenLogo string `json:"imagen_logo"`
}

// MarcaResponse salida de una marca.
type MarcaResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	ImagenLogo string `json:"imagen_logo,omitempty"`
}

// MarcaFromEntity mapea la entidad a su respuesta.
func MarcaFromEntity(m *entity.Marca) MarcaResponse {
	return MarcaResponse{ID: m.ID, Nombre: m.Nombre, ImagenLogo: m.ImagenLogo}
}

// CrearProductoRequest entrada para crear un producto.
type CrearProductoRequest struct {
	CategoriaID string          `json:"categoria_id" validate:"required"`
	MarcaID     *string         `json:"marca_id"`
	Nombre      string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion string          `json:"descripcion"`
	SKUBase     string          `json:"sku_base"`
	PrecioBase  decimal.Decimal `json:"precio_base"`
	PesoKg      decimal.Decimal `json:"peso_kg"`
	VolumenM3   decimal.Decimal `json:"volumen_m3"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID            string          `json:"id"`
	CategoriaID   string          `json:"categoria_id"`
	MarcaID       *string         `json:"marca_id,omitempty"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	SKUBase       string          `json:"sku_base,omitempty"`
	PrecioBase    decimal.Decimal `json:"precio_base"`
	PesoKg        decimal.Decimal `json:"peso_kg"`
	VolumenM3     decimal.Decimal `json:"volumen_m3"`
	Activo        bool            `json:"activo"`
	FechaCreacion time.Time       `json:"fecha_creacion"`
}

// ProductoFromEntity mapea la entidad a su respuesta.
func ProductoFromEntity(p *entity.Producto) ProductoResponse {
	return ProductoResponse{
		ID:            p.ID,
		CategoriaID:   p.CategoriaID,
		MarcaID:       p.MarcaID,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		SKUBase:       p.SKUBase,
		PrecioBase:    p.PrecioBase,
		PesoKg:        p.PesoKg,
		VolumenM3:     p.VolumenM3,
		Activo:        p.Activo,
		FechaCreacion: p.FechaCreacion,
	}
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CrearVarianteRequest entrada para crear una variante vendible.
type CrearVarianteRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	SKU        string          `json:"sku" validate:"required,min=1,max=100"`
	Precio     decimal.Decimal `json:"precio"`
	PesoKg     decimal.Decimal `json:"peso_kg"`
}

// VarianteResponse salida de una variante. Stock es el agregado cacheado que
// mantiene el libro de inventario.
type VarianteResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	SKU        string          `json:"sku"`
	Precio     decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	PesoKg     decimal.Decimal `json:"peso_kg"`
	Activo     bool            `json:"activo"`
}

// VarianteFromEntity mapea la entidad a su respuesta.
func VarianteFromEntity(v *entity.ProductoVariante) VarianteResponse {
	return VarianteResponse{
		ID:         v.ID,
		ProductoID: v.ProductoID,
		SKU:        v.SKU,
		Precio:     v.Precio,
		Stock:      v.Stock,
		PesoKg:     v.PesoKg,
		Activo:     v.Activo,
	}
}

// SetAtributoRequest entrada para asignar el valor de un atributo a una variante.
type SetAtributoRequest struct {
	CodigoAtributo string           `json:"codigo_atributo" validate:"required"`
	ValorTexto     string           `json:"valor_texto"`
	ValorNum       *decimal.Decimal `json:"valor_num"`
}

// AgregarImagenRequest entrada para agregar una imagen de producto o variante.
type AgregarImagenRequest struct {
	ProductoID  *string `json:"producto_id"`
	VarianteID  *string `json:"variante_id"`
	URL         string  `json:"url" validate:"required"`
	EsPrincipal bool    `json:"es_principal"`
	Orden       int     `json:"orden"`
}

// ImagenResponse salida de una imagen.
type ImagenResponse struct {
	ID          string  `json:"id"`
	ProductoID  *string `json:"producto_id,omitempty"`
	VarianteID  *string `json:"variante_id,omitempty"`
	URL         string  `json:"url"`
	EsPrincipal bool    `json:"es_principal"`
	Orden       int     `json:"orden"`
}

// ImagenFromEntity mapea la entidad a su respuesta.
func ImagenFromEntity(i *entity.Imagen) ImagenResponse {
	return ImagenResponse{
		ID:          i.ID,
		ProductoID:  i.ProductoID,
		VarianteID:  i.VarianteID,
		URL:         i.URL,
		EsPrincipal: i.EsPrincipal,
		Orden:       i.Orden,
	}
}
