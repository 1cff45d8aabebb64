package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.PromocionRepository = (*PromocionRepo)(nil)

// PromocionRepo implementación sobre PostgreSQL para promociones y sus objetivos.
type PromocionRepo struct {
	q Querier
}

// NewPromocionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromocionRepository(q Querier) *PromocionRepo {
	return &PromocionRepo{q: q}
}

const promocionColumns = `id, nombre, codigo, tipo_descuento, valor_descuento, fecha_inicio, fecha_fin,
		activo, min_compra, max_usos`

// Create persiste una promoción.
func (r *PromocionRepo) Create(promocion *entity.Promocion) error {
	if promocion.ID == "" {
		promocion.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promociones (` + promocionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		promocion.ID, promocion.Nombre, promocion.Codigo, promocion.TipoDescuento,
		promocion.ValorDescuento, promocion.FechaInicio, promocion.FechaFin,
		promocion.Activo, promocion.MinCompra, promocion.MaxUsos,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create promocion: %w", err)
	}
	return nil
}

// GetByID obtiene una promoción por ID.
func (r *PromocionRepo) GetByID(id string) (*entity.Promocion, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByCodigo obtiene una promoción por su código de cupón.
func (r *PromocionRepo) GetByCodigo(codigo string) (*entity.Promocion, error) {
	return r.get(`WHERE codigo = $1`, codigo)
}

func (r *PromocionRepo) get(where string, arg any) (*entity.Promocion, error) {
	query := `SELECT ` + promocionColumns + ` FROM promociones ` + where
	p, err := scanPromocion(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promocion: %w", err)
	}
	return p, nil
}

// ListVigentes devuelve las promociones activas cuya ventana de vigencia
// contiene a now (fecha_fin nula = sin expiración). Orden por ID para que la
// evaluación sea determinista.
func (r *PromocionRepo) ListVigentes(now time.Time) ([]*entity.Promocion, error) {
	query := `
		SELECT ` + promocionColumns + ` FROM promociones
		WHERE activo AND fecha_inicio <= $1 AND (fecha_fin IS NULL OR fecha_fin >= $1)
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, now)
	if err != nil {
		return nil, fmt.Errorf("list promociones vigentes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Promocion
	for rows.Next() {
		p, err := scanPromocion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promocion: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza una promoción.
func (r *PromocionRepo) Update(promocion *entity.Promocion) error {
	query := `
		UPDATE promociones SET nombre = $2, codigo = $3, tipo_descuento = $4, valor_descuento = $5,
			fecha_inicio = $6, fecha_fin = $7, activo = $8, min_compra = $9, max_usos = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		promocion.ID, promocion.Nombre, promocion.Codigo, promocion.TipoDescuento,
		promocion.ValorDescuento, promocion.FechaInicio, promocion.FechaFin,
		promocion.Activo, promocion.MinCompra, promocion.MaxUsos,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update promocion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// Delete elimina la promoción. Las referencias desde pedidos quedan en NULL;
// los snapshots desnormalizados conservan el histórico.
func (r *PromocionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM promociones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete promocion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanPromocion(row pgx.Row) (*entity.Promocion, error) {
	var p entity.Promocion
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Codigo, &p.TipoDescuento, &p.ValorDescuento,
		&p.FechaInicio, &p.FechaFin, &p.Activo, &p.MinCompra, &p.MaxUsos,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateObjetivo persiste el vínculo promoción-objetivo. La unión etiquetada
// se aplana en columnas tipo/id (y su par _gratis para x_por_y).
func (r *PromocionRepo) CreateObjetivo(objetivo *entity.PromocionProducto) error {
	if objetivo.ID == "" {
		objetivo.ID = uuid.New().String()
	}
	var gratisTipo, gratisID *string
	if objetivo.ObjetivoGratis != nil {
		gratisTipo = &objetivo.ObjetivoGratis.Tipo
		gratisID = &objetivo.ObjetivoGratis.ID
	}
	query := `
		INSERT INTO promocion_productos (id, promocion_id, objetivo_tipo, objetivo_id,
			objetivo_gratis_tipo, objetivo_gratis_id, cantidad_requerida, cantidad_gratis)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		objetivo.ID, objetivo.PromocionID, objetivo.Objetivo.Tipo, objetivo.Objetivo.ID,
		gratisTipo, gratisID, objetivo.CantidadRequerida, objetivo.CantidadGratis,
	)
	if err != nil {
		return fmt.Errorf("create objetivo: %w", err)
	}
	return nil
}

// ObjetivosByPromocion devuelve los objetivos de una promoción.
func (r *PromocionRepo) ObjetivosByPromocion(promocionID string) ([]*entity.PromocionProducto, error) {
	query := `
		SELECT id, promocion_id, objetivo_tipo, objetivo_id, objetivo_gratis_tipo,
			objetivo_gratis_id, cantidad_requerida, cantidad_gratis
		FROM promocion_productos WHERE promocion_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, promocionID)
	if err != nil {
		return nil, fmt.Errorf("objetivos by promocion: %w", err)
	}
	defer rows.Close()
	var list []*entity.PromocionProducto
	for rows.Next() {
		var o entity.PromocionProducto
		var gratisTipo, gratisID *string
		if err := rows.Scan(&o.ID, &o.PromocionID, &o.Objetivo.Tipo, &o.Objetivo.ID,
			&gratisTipo, &gratisID, &o.CantidadRequerida, &o.CantidadGratis); err != nil {
			return nil, fmt.Errorf("scan objetivo: %w", err)
		}
		if gratisTipo != nil && gratisID != nil {
			o.ObjetivoGratis = &entity.ObjetivoPromocion{Tipo: *gratisTipo, ID: *gratisID}
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CountUsos cuenta en cuántos pedidos distintos se aplicó la promoción, ya sea
// como descuento de línea o como snapshot a nivel de pedido.
func (r *PromocionRepo) CountUsos(promocionID string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT pedido_id) FROM (
			SELECT pedido_id FROM pedido_items WHERE promocion_id = $1
			UNION ALL
			SELECT pedido_id FROM promociones_aplicadas WHERE promocion_id = $1
		) usos`
	var count int
	if err := r.q.QueryRow(context.Background(), query, promocionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count usos: %w", err)
	}
	return count, nil
}
