package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, compra_id, proveedor_id, producto_id, variante_id, codigo_lote, presentacion,
		unidades_por_presentacion, cantidad_inicial, cantidad_disponible, costo_total, costo_unitario,
		fecha_ingreso, fecha_vencimiento, almacen_id`

// Create persiste un lote nuevo.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	if lote.ID == "" {
		lote.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lotes (` + loteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.CompraID, lote.ProveedorID, lote.ProductoID, lote.VarianteID,
		lote.CodigoLote, lote.Presentacion, lote.UnidadesPorPresentacion,
		lote.CantidadInicial, lote.CantidadDisponible, lote.CostoTotal, lote.CostoUnitario,
		lote.FechaIngreso, lote.FechaVencimiento, lote.AlmacenID,
	)
	if err != nil {
		return fmt.Errorf("create lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	lote, err := scanLote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return lote, nil
}

// ListByVariante devuelve todos los lotes de la variante, agotados incluidos.
func (r *LoteRepo) ListByVariante(varianteID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE variante_id = $1 ORDER BY fecha_ingreso, id`
	return r.listLotes(query, varianteID)
}

// ListByVarianteForUpdate bloquea los lotes de la variante para aplicar un plan
// de salida sin carreras. Solo tiene sentido dentro de una transacción.
func (r *LoteRepo) ListByVarianteForUpdate(varianteID string) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE variante_id = $1 ORDER BY fecha_ingreso, id FOR UPDATE`
	return r.listLotes(query, varianteID)
}

// UpdateDisponible fija la cantidad disponible de un lote.
func (r *LoteRepo) UpdateDisponible(id string, cantidadDisponible int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE lotes SET cantidad_disponible = $2 WHERE id = $1`, id, cantidadDisponible)
	if err != nil {
		return fmt.Errorf("update lote disponible: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lote disponible: lote %s no existe", id)
	}
	return nil
}

func (r *LoteRepo) listLotes(query string, args ...any) ([]*entity.Lote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lote
	for rows.Next() {
		lote, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, lote)
	}
	return list, rows.Err()
}

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(
		&l.ID, &l.CompraID, &l.ProveedorID, &l.ProductoID, &l.VarianteID,
		&l.CodigoLote, &l.Presentacion, &l.UnidadesPorPresentacion,
		&l.CantidadInicial, &l.CantidadDisponible, &l.CostoTotal, &l.CostoUnitario,
		&l.FechaIngreso, &l.FechaVencimiento, &l.AlmacenID,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL del libro de movimientos.
// Solo inserta y consulta: los asientos son inmutables.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un asiento del libro de inventario.
func (r *MovimientoRepo) Create(movimiento *entity.MovimientoInventario) error {
	if movimiento.ID == "" {
		movimiento.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_inventario (id, lote_id, variante_id, tipo, cantidad, saldo_despues,
			costo_unitario, total_costo, motivo, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.LoteID, movimiento.VarianteID, movimiento.Tipo,
		movimiento.Cantidad, movimiento.SaldoDespues, movimiento.CostoUnitario,
		movimiento.TotalCosto, movimiento.Motivo, movimiento.UsuarioID, movimiento.Fecha,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// ListByVariante lista asientos de una variante en un rango de fechas.
func (r *MovimientoRepo) ListByVariante(varianteID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `
		SELECT id, lote_id, variante_id, tipo, cantidad, saldo_despues, costo_unitario, total_costo, motivo, usuario_id, fecha
		FROM movimientos_inventario WHERE variante_id = $1`
	args := []any{varianteID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(&m.ID, &m.LoteID, &m.VarianteID, &m.Tipo, &m.Cantidad,
			&m.SaldoDespues, &m.CostoUnitario, &m.TotalCosto, &m.Motivo, &m.UsuarioID, &m.Fecha); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UltimoSaldo devuelve el saldo_despues del asiento más reciente de la variante
// (0 si no hay asientos).
func (r *MovimientoRepo) UltimoSaldo(varianteID string) (int, error) {
	query := `
		SELECT saldo_despues FROM movimientos_inventario
		WHERE variante_id = $1 ORDER BY fecha DESC, id DESC LIMIT 1`
	var saldo int
	err := r.q.QueryRow(context.Background(), query, varianteID).Scan(&saldo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("ultimo saldo: %w", err)
	}
	return saldo, nil
}

// TotalReservado devuelve las unidades retenidas de la variante. Las reservas
// se asientan con cantidad positiva y las devoluciones con negativa, así que
// la suma directa es el neto retenido.
func (r *MovimientoRepo) TotalReservado(varianteID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(cantidad), 0)
		FROM movimientos_inventario
		WHERE variante_id = $1 AND tipo IN ($2, $3)`
	var total int
	err := r.q.QueryRow(context.Background(), query, varianteID,
		entity.MovimientoReserva, entity.MovimientoDevolucion).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total reservado: %w", err)
	}
	return total, nil
}
