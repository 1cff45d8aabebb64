package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// CategoriaRepository puerto de persistencia para categorías.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	GetBySlug(slug string) (*entity.Categoria, error)
	List() ([]*entity.Categoria, error)
}

// MarcaRepository puerto de persistencia para marcas.
type MarcaRepository interface {
	Create(marca *entity.Marca) error
	GetByID(id string) (*entity.Marca, error)
	List() ([]*entity.Marca, error)
}

// ProductoRepository puerto de persistencia para productos.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	List(limit, offset int) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
}

// VarianteRepository puerto de persistencia para variantes. GetForUpdate bloquea
// la fila (SELECT FOR UPDATE) para serializar las mutaciones del libro de
// inventario por variante.
type VarianteRepository interface {
	Create(variante *entity.ProductoVariante) error
	GetByID(id string) (*entity.ProductoVariante, error)
	GetBySKU(sku string) (*entity.ProductoVariante, error)
	GetForUpdate(id string) (*entity.ProductoVariante, error)
	ListByProducto(productoID string) ([]*entity.ProductoVariante, error)
	Update(variante *entity.ProductoVariante) error
	UpdateStock(id string, stock int) error
}

// AtributoRepository puerto de persistencia para atributos y sus valores.
type AtributoRepository interface {
	Create(atributo *entity.Atributo) error
	GetByCodigo(codigo string) (*entity.Atributo, error)
	List() ([]*entity.Atributo, error)
	SetValorProducto(valor *entity.ProductoAtributo) error
	SetValorVariante(valor *entity.VarianteAtributo) error
	ValoresByVariante(varianteID string) ([]*entity.VarianteAtributo, error)
}

// ImagenRepository puerto de persistencia para imágenes de catálogo.
type ImagenRepository interface {
	Create(imagen *entity.Imagen) error
	ListByProducto(productoID string) ([]*entity.Imagen, error)
}
