package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// CarritoRepository puerto de persistencia para carritos.
type CarritoRepository interface {
	Create(carrito *entity.Carrito) error
	GetByID(id string) (*entity.Carrito, error)
	GetActivoByUsuario(usuarioID string) (*entity.Carrito, error)
	Update(carrito *entity.Carrito) error

	AddItem(item *entity.CarritoItem) error
	UpdateItem(item *entity.CarritoItem) error
	RemoveItem(itemID string) error
	ItemsByCarrito(carritoID string) ([]*entity.CarritoItem, error)
}

// PedidoRepository puerto de persistencia para pedidos, sus líneas y los
// snapshots de promociones aplicadas.
type PedidoRepository interface {
	Create(pedido *entity.Pedido) error
	CreateItem(item *entity.PedidoItem) error
	CreatePromocionAplicada(snapshot *entity.PromocionAplicada) error
	GetByID(id string) (*entity.Pedido, error)
	GetByCodigo(codigo string) (*entity.Pedido, error)
	ItemsByPedido(pedidoID string) ([]*entity.PedidoItem, error)
	PromocionesAplicadas(pedidoID string) ([]*entity.PromocionAplicada, error)
	List(usuarioID string, limit, offset int) ([]*entity.Pedido, error)
	UpdateEstado(id, estado string) error
}

// PagoRepository puerto de persistencia para pagos.
type PagoRepository interface {
	Create(pago *entity.Pago) error
	GetByID(id string) (*entity.Pago, error)
	ListByPedido(pedidoID string) ([]*entity.Pago, error)
	Update(pago *entity.Pago) error
}
