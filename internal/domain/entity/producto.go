package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria nodo del árbol de categorías del catálogo.
type Categoria struct {
	ID            string
	Nombre        string
	Slug          string // único
	PadreID       *string
	Descripcion   string
	ImagenURLBase string
}

// Marca marca comercial de productos.
type Marca struct {
	ID         string
	Nombre     string // único
	ImagenLogo string
}

// Producto artículo del catálogo. El stock vendible vive en sus variantes.
type Producto struct {
	ID                 string
	CategoriaID        string
	MarcaID            *string
	Nombre             string
	Descripcion        string
	SKUBase            string // único (puede estar vacío)
	PrecioBase         decimal.Decimal
	PesoKg             decimal.Decimal
	VolumenM3          decimal.Decimal
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion *time.Time
}

// ProductoVariante unidad vendible con SKU único. Stock es un agregado cacheado:
// debe ser siempre igual a la suma de cantidad_disponible de sus lotes; el libro
// de movimientos es la fuente de verdad.
type ProductoVariante struct {
	ID                 string
	ProductoID         string
	SKU                string // único
	Precio             decimal.Decimal
	Stock              int
	PesoKg             decimal.Decimal
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion *time.Time
}

// Imagen imagen de producto o variante (exactamente uno de los dos).
type Imagen struct {
	ID          string
	ProductoID  *string
	VarianteID  *string
	URL         string
	EsPrincipal bool
	Orden       int
}
