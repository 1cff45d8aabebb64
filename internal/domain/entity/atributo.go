package entity

import "github.com/shopspring/decimal"

// Tipos de atributo.
const (
	AtributoTexto    = "texto"
	AtributoNumero   = "numero"
	AtributoDecimal  = "decimal"
	AtributoBooleano = "booleano"
	AtributoLista    = "lista"
)

// Atributo característica tipada reutilizable del catálogo (talla, color, voltaje...).
type Atributo struct {
	ID          string
	Nombre      string
	Codigo      string // único
	Tipo        string
	Unidad      string
	EsVariacion bool // true si el atributo distingue variantes
	OrdenVisual int
}

// CategoriaAtributo vincula un atributo a una categoría (único por par).
type CategoriaAtributo struct {
	ID          string
	CategoriaID string
	AtributoID  string
	Requerido   bool
}

// ProductoAtributo valor de un atributo a nivel de producto (único por par).
type ProductoAtributo struct {
	ID         string
	ProductoID string
	AtributoID string
	ValorText  string
	ValorNum   *decimal.Decimal
}

// VarianteAtributo valor de un atributo a nivel de variante (único por par).
type VarianteAtributo struct {
	ID         string
	VarianteID string
	AtributoID string
	ValorText  string
	ValorNum   *decimal.Decimal
}
