package checkout

import (
	"context"

	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// Repos repositorios atados a la transacción de finalización. El descuento de
// stock, el pedido con sus líneas, los snapshots de promociones y la auditoría
// se confirman juntos o no se confirma nada.
type Repos struct {
	Lotes       repository.LoteRepository
	Movimientos repository.MovimientoRepository
	Variantes   repository.VarianteRepository
	Pedidos     repository.PedidoRepository
	Carritos    repository.CarritoRepository
	Envios      repository.EnvioRepository
	Logs        repository.LogRepository
}

// TxRunner ejecuta la finalización de un pedido dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
