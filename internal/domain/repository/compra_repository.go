package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// ProveedorRepository puerto de persistencia para proveedores.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	List() ([]*entity.Proveedor, error)
	Update(proveedor *entity.Proveedor) error
}

// CompraRepository puerto de persistencia para compras y sus líneas.
type CompraRepository interface {
	Create(compra *entity.Compra, items []*entity.CompraItem) error
	GetByID(id string) (*entity.Compra, error)
	ItemsByCompra(compraID string) ([]*entity.CompraItem, error)
	List(limit, offset int) ([]*entity.Compra, error)
	UpdateEstado(id, estado string) error
}
