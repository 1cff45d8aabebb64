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

var _ repository.CarritoRepository = (*CarritoRepo)(nil)

// CarritoRepo implementación sobre PostgreSQL (usable con pool o tx).
type CarritoRepo struct {
	q Querier
}

// NewCarritoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarritoRepository(q Querier) *CarritoRepo {
	return &CarritoRepo{q: q}
}

const carritoColumns = `id, usuario_id, session_id, fecha_creacion, fecha_actualizacion, activo,
		cupon_codigo, descuento_global_aplicado`

// Create persiste un carrito.
func (r *CarritoRepo) Create(carrito *entity.Carrito) error {
	if carrito.ID == "" {
		carrito.ID = uuid.New().String()
	}
	query := `
		INSERT INTO carritos (` + carritoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		carrito.ID, carrito.UsuarioID, carrito.SessionID, carrito.FechaCreacion,
		carrito.FechaActualizacion, carrito.Activo, carrito.CuponCodigo,
		carrito.DescuentoGlobalAplicado,
	)
	if err != nil {
		return fmt.Errorf("create carrito: %w", err)
	}
	return nil
}

// GetByID obtiene un carrito por ID.
func (r *CarritoRepo) GetByID(id string) (*entity.Carrito, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetActivoByUsuario obtiene el carrito activo del usuario, si existe.
func (r *CarritoRepo) GetActivoByUsuario(usuarioID string) (*entity.Carrito, error) {
	return r.get(`WHERE usuario_id = $1 AND activo ORDER BY fecha_creacion DESC LIMIT 1`, usuarioID)
}

func (r *CarritoRepo) get(where string, arg any) (*entity.Carrito, error) {
	query := `SELECT ` + carritoColumns + ` FROM carritos ` + where
	var c entity.Carrito
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.UsuarioID, &c.SessionID, &c.FechaCreacion, &c.FechaActualizacion,
		&c.Activo, &c.CuponCodigo, &c.DescuentoGlobalAplicado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carrito: %w", err)
	}
	return &c, nil
}

// Update actualiza un carrito.
func (r *CarritoRepo) Update(carrito *entity.Carrito) error {
	query := `
		UPDATE carritos SET fecha_actualizacion = $2, activo = $3, cupon_codigo = $4,
			descuento_global_aplicado = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		carrito.ID, carrito.FechaActualizacion, carrito.Activo,
		carrito.CuponCodigo, carrito.DescuentoGlobalAplicado,
	)
	if err != nil {
		return fmt.Errorf("update carrito: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// AddItem agrega una línea al carrito.
func (r *CarritoRepo) AddItem(item *entity.CarritoItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO carrito_items (id, carrito_id, variante_id, cantidad, precio_unitario_snapshot)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CarritoID, item.VarianteID, item.Cantidad, item.PrecioUnitarioSnapshot,
	)
	if err != nil {
		return fmt.Errorf("add carrito item: %w", err)
	}
	return nil
}

// UpdateItem actualiza la cantidad de una línea. El precio congelado no cambia.
func (r *CarritoRepo) UpdateItem(item *entity.CarritoItem) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE carrito_items SET cantidad = $2 WHERE id = $1`, item.ID, item.Cantidad)
	if err != nil {
		return fmt.Errorf("update carrito item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// RemoveItem elimina una línea del carrito.
func (r *CarritoRepo) RemoveItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM carrito_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("remove carrito item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ItemsByCarrito devuelve las líneas del carrito.
func (r *CarritoRepo) ItemsByCarrito(carritoID string) ([]*entity.CarritoItem, error) {
	query := `
		SELECT id, carrito_id, variante_id, cantidad, precio_unitario_snapshot
		FROM carrito_items WHERE carrito_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, carritoID)
	if err != nil {
		return nil, fmt.Errorf("items by carrito: %w", err)
	}
	defer rows.Close()
	var list []*entity.CarritoItem
	for rows.Next() {
		var item entity.CarritoItem
		if err := rows.Scan(&item.ID, &item.CarritoID, &item.VarianteID,
			&item.Cantidad, &item.PrecioUnitarioSnapshot); err != nil {
			return nil, fmt.Errorf("scan carrito item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación sobre PostgreSQL para pedidos, líneas y snapshots
// de promociones.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const pedidoColumns = `id, usuario_id, codigo, fecha_pedido, estado, subtotal, descuento, impuestos,
		costo_envio, total, metodo_pago, direccion_envio, nota`

// Create persiste un pedido.
func (r *PedidoRepo) Create(pedido *entity.Pedido) error {
	if pedido.ID == "" {
		pedido.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pedidos (` + pedidoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		pedido.ID, pedido.UsuarioID, pedido.Codigo, pedido.FechaPedido, pedido.Estado,
		pedido.Subtotal, pedido.Descuento, pedido.Impuestos, pedido.CostoEnvio,
		pedido.Total, pedido.MetodoPago, pedido.DireccionEnvio, pedido.Nota,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create pedido: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *PedidoRepo) CreateItem(item *entity.PedidoItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pedido_items (id, pedido_id, variante_id, lote_origen_id, cantidad,
			precio_unitario, subtotal, descuento_item, promocion_id, total_neto)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PedidoID, item.VarianteID, item.LoteOrigenID, item.Cantidad,
		item.PrecioUnitario, item.Subtotal, item.DescuentoItem, item.PromocionID, item.TotalNeto,
	)
	if err != nil {
		return fmt.Errorf("create pedido item: %w", err)
	}
	return nil
}

// CreatePromocionAplicada persiste el snapshot de un descuento a nivel de pedido.
func (r *PedidoRepo) CreatePromocionAplicada(snapshot *entity.PromocionAplicada) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promociones_aplicadas (id, pedido_id, promocion_id, nombre_snapshot, valor_descuento_aplicado)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		snapshot.ID, snapshot.PedidoID, snapshot.PromocionID,
		snapshot.NombreSnapshot, snapshot.ValorDescuentoAplicado,
	)
	if err != nil {
		return fmt.Errorf("create promocion aplicada: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByCodigo obtiene un pedido por su código único.
func (r *PedidoRepo) GetByCodigo(codigo string) (*entity.Pedido, error) {
	return r.get(`WHERE codigo = $1`, codigo)
}

func (r *PedidoRepo) get(where string, arg any) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos ` + where
	p, err := scanPedido(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return p, nil
}

// ItemsByPedido devuelve las líneas del pedido.
func (r *PedidoRepo) ItemsByPedido(pedidoID string) ([]*entity.PedidoItem, error) {
	query := `
		SELECT id, pedido_id, variante_id, lote_origen_id, cantidad, precio_unitario,
			subtotal, descuento_item, promocion_id, total_neto
		FROM pedido_items WHERE pedido_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("items by pedido: %w", err)
	}
	defer rows.Close()
	var list []*entity.PedidoItem
	for rows.Next() {
		var item entity.PedidoItem
		if err := rows.Scan(&item.ID, &item.PedidoID, &item.VarianteID, &item.LoteOrigenID,
			&item.Cantidad, &item.PrecioUnitario, &item.Subtotal, &item.DescuentoItem,
			&item.PromocionID, &item.TotalNeto); err != nil {
			return nil, fmt.Errorf("scan pedido item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// PromocionesAplicadas devuelve los snapshots de promociones del pedido.
func (r *PedidoRepo) PromocionesAplicadas(pedidoID string) ([]*entity.PromocionAplicada, error) {
	query := `
		SELECT id, pedido_id, promocion_id, nombre_snapshot, valor_descuento_aplicado
		FROM promociones_aplicadas WHERE pedido_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("promociones aplicadas: %w", err)
	}
	defer rows.Close()
	var list []*entity.PromocionAplicada
	for rows.Next() {
		var s entity.PromocionAplicada
		if err := rows.Scan(&s.ID, &s.PedidoID, &s.PromocionID,
			&s.NombreSnapshot, &s.ValorDescuentoAplicado); err != nil {
			return nil, fmt.Errorf("scan promocion aplicada: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// List devuelve pedidos paginados, opcionalmente filtrados por usuario.
func (r *PedidoRepo) List(usuarioID string, limit, offset int) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos`
	args := []any{}
	pos := 1
	if usuarioID != "" {
		query += fmt.Sprintf(" WHERE usuario_id = $%d", pos)
		args = append(args, usuarioID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha_pedido DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado del pedido.
func (r *PedidoRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	err := row.Scan(
		&p.ID, &p.UsuarioID, &p.Codigo, &p.FechaPedido, &p.Estado,
		&p.Subtotal, &p.Descuento, &p.Impuestos, &p.CostoEnvio, &p.Total,
		&p.MetodoPago, &p.DireccionEnvio, &p.Nota,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación sobre PostgreSQL.
type PagoRepo struct {
	q Querier
}

func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

const pagoColumns = `id, pedido_id, metodo, monto, fecha_pago, estado, comprobante_url,
		referencia_externa, usuario_verificador_id, fecha_validacion`

// Create persiste un pago.
func (r *PagoRepo) Create(pago *entity.Pago) error {
	if pago.ID == "" {
		pago.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pagos (` + pagoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		pago.ID, pago.PedidoID, pago.Metodo, pago.Monto, pago.FechaPago, pago.Estado,
		pago.ComprobanteURL, pago.ReferenciaExterna, pago.UsuarioVerificadorID, pago.FechaValidacion,
	)
	if err != nil {
		return fmt.Errorf("create pago: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PagoRepo) GetByID(id string) (*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE id = $1`
	p, err := scanPago(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return p, nil
}

// ListByPedido devuelve los pagos registrados de un pedido.
func (r *PagoRepo) ListByPedido(pedidoID string) ([]*entity.Pago, error) {
	query := `SELECT ` + pagoColumns + ` FROM pagos WHERE pedido_id = $1 ORDER BY fecha_pago`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un pago (verificación manual).
func (r *PagoRepo) Update(pago *entity.Pago) error {
	query := `
		UPDATE pagos SET estado = $2, comprobante_url = $3, referencia_externa = $4,
			usuario_verificador_id = $5, fecha_validacion = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		pago.ID, pago.Estado, pago.ComprobanteURL, pago.ReferenciaExterna,
		pago.UsuarioVerificadorID, pago.FechaValidacion,
	)
	if err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanPago(row pgx.Row) (*entity.Pago, error) {
	var p entity.Pago
	err := row.Scan(
		&p.ID, &p.PedidoID, &p.Metodo, &p.Monto, &p.FechaPago, &p.Estado,
		&p.ComprobanteURL, &p.ReferenciaExterna, &p.UsuarioVerificadorID, &p.FechaValidacion,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
