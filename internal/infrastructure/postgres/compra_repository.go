package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

func (r *ProveedorRepo) Create(proveedor *entity.Proveedor) error {
	if proveedor.ID == "" {
		proveedor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO proveedores (id, nombre, ruc, contacto, telefono, email, direccion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.RUC, proveedor.Contacto,
		proveedor.Telefono, proveedor.Email, proveedor.Direccion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `SELECT id, nombre, ruc, contacto, telefono, email, direccion FROM proveedores WHERE id = $1`
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &p.RUC, &p.Contacto, &p.Telefono, &p.Email, &p.Direccion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

func (r *ProveedorRepo) List() ([]*entity.Proveedor, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, ruc, contacto, telefono, email, direccion FROM proveedores ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.Nombre, &p.RUC, &p.Contacto, &p.Telefono, &p.Email, &p.Direccion); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProveedorRepo) Update(proveedor *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, ruc = $3, contacto = $4, telefono = $5,
			email = $6, direccion = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.RUC, proveedor.Contacto,
		proveedor.Telefono, proveedor.Email, proveedor.Direccion,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación sobre PostgreSQL para compras y sus líneas.
type CompraRepo struct {
	q Querier
}

func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

// Create persiste la compra y todas sus líneas.
func (r *CompraRepo) Create(compra *entity.Compra, items []*entity.CompraItem) error {
	if compra.ID == "" {
		compra.ID = uuid.New().String()
	}
	query := `
		INSERT INTO compras (id, proveedor_id, codigo, fecha_compra, subtotal, impuestos, total, estado, nota)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		compra.ID, compra.ProveedorID, compra.Codigo, compra.FechaCompra,
		compra.Subtotal, compra.Impuestos, compra.Total, compra.Estado, compra.Nota,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create compra: %w", err)
	}

	itemQuery := `
		INSERT INTO compra_items (id, compra_id, producto_id, variante_id, presentacion,
			unidades_por_presentacion, cantidad_presentaciones, cantidad_unidades,
			precio_unitario_presentacion, precio_unitario_unidad, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CompraID = compra.ID
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.CompraID, item.ProductoID, item.VarianteID, item.Presentacion,
			item.UnidadesPorPresentacion, item.CantidadPresentaciones, item.CantidadUnidades,
			item.PrecioUnitarioPresentacion, item.PrecioUnitarioUnidad, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("create compra item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	query := `
		SELECT id, proveedor_id, codigo, fecha_compra, subtotal, impuestos, total, estado, nota
		FROM compras WHERE id = $1`
	var c entity.Compra
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ProveedorID, &c.Codigo, &c.FechaCompra,
		&c.Subtotal, &c.Impuestos, &c.Total, &c.Estado, &c.Nota,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return &c, nil
}

// ItemsByCompra devuelve las líneas de una compra.
func (r *CompraRepo) ItemsByCompra(compraID string) ([]*entity.CompraItem, error) {
	query := `
		SELECT id, compra_id, producto_id, variante_id, presentacion, unidades_por_presentacion,
			cantidad_presentaciones, cantidad_unidades, precio_unitario_presentacion,
			precio_unitario_unidad, subtotal
		FROM compra_items WHERE compra_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, compraID)
	if err != nil {
		return nil, fmt.Errorf("items by compra: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompraItem
	for rows.Next() {
		var item entity.CompraItem
		if err := rows.Scan(&item.ID, &item.CompraID, &item.ProductoID, &item.VarianteID,
			&item.Presentacion, &item.UnidadesPorPresentacion, &item.CantidadPresentaciones,
			&item.CantidadUnidades, &item.PrecioUnitarioPresentacion,
			&item.PrecioUnitarioUnidad, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan compra item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List devuelve compras paginadas, más recientes primero.
func (r *CompraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	query := `
		SELECT id, proveedor_id, codigo, fecha_compra, subtotal, impuestos, total, estado, nota
		FROM compras ORDER BY fecha_compra DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()
	var list []*entity.Compra
	for rows.Next() {
		var c entity.Compra
		if err := rows.Scan(&c.ID, &c.ProveedorID, &c.Codigo, &c.FechaCompra,
			&c.Subtotal, &c.Impuestos, &c.Total, &c.Estado, &c.Nota); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la compra.
func (r *CompraRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE compras SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
