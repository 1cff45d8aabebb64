package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/internal/application/checkout"
	"github.com/dcastillo/comercio-api/internal/application/inventory"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*CheckoutTxRunner)(nil)
var _ billing.TxRunner = (*EmisionTxRunner)(nil)

// TxRunner ejecuta las operaciones del libro de inventario dentro de una
// transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	movRepo repository.MovimientoRepository,
	varianteRepo repository.VarianteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	loteRepo := NewLoteRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	varianteRepo := NewVarianteRepository(tx)

	if err := fn(loteRepo, movRepo, varianteRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CheckoutTxRunner ejecuta la finalización de un pedido (descuento de stock,
// pedido, snapshots, envío y auditoría) en una sola transacción.
type CheckoutTxRunner struct {
	pool *pgxpool.Pool
}

// NewCheckoutTxRunner construye el runner con el pool.
func NewCheckoutTxRunner(pool *pgxpool.Pool) *CheckoutTxRunner {
	return &CheckoutTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de checkout atados a la tx
// y hace Commit o Rollback.
func (r *CheckoutTxRunner) Run(ctx context.Context, fn func(repos checkout.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := checkout.Repos{
		Lotes:       NewLoteRepository(tx),
		Movimientos: NewMovimientoRepository(tx),
		Variantes:   NewVarianteRepository(tx),
		Pedidos:     NewPedidoRepository(tx),
		Carritos:    NewCarritoRepository(tx),
		Envios:      NewEnvioRepository(tx),
		Logs:        NewLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// EmisionTxRunner ejecuta la emisión de un comprobante (correlativo, fila del
// comprobante y auditoría) en una sola transacción.
type EmisionTxRunner struct {
	pool *pgxpool.Pool
}

// NewEmisionTxRunner construye el runner con el pool.
func NewEmisionTxRunner(pool *pgxpool.Pool) *EmisionTxRunner {
	return &EmisionTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de emisión atados a la tx
// y hace Commit o Rollback.
func (r *EmisionTxRunner) Run(ctx context.Context, fn func(repos billing.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := billing.Repos{
		Comprobantes: NewComprobanteRepository(tx),
		Pedidos:      NewPedidoRepository(tx),
		Logs:         NewLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
