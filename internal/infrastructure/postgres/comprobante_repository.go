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

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación sobre PostgreSQL (usable con pool o tx).
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

const comprobanteColumns = `id, pedido_id, tipo, numero, fecha_emision, monto_total, impuesto,
		pdf_url, estado, codigo_hash`

// Create persiste un comprobante.
func (r *ComprobanteRepo) Create(comprobante *entity.Comprobante) error {
	if comprobante.ID == "" {
		comprobante.ID = uuid.New().String()
	}
	query := `
		INSERT INTO comprobantes (` + comprobanteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		comprobante.ID, comprobante.PedidoID, comprobante.Tipo, comprobante.Numero,
		comprobante.FechaEmision, comprobante.MontoTotal, comprobante.Impuesto,
		comprobante.PDFURL, comprobante.Estado, comprobante.CodigoHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create comprobante: %w", err)
	}
	return nil
}

// GetByID obtiene un comprobante por ID.
func (r *ComprobanteRepo) GetByID(id string) (*entity.Comprobante, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByPedido obtiene el comprobante más reciente de un pedido.
func (r *ComprobanteRepo) GetByPedido(pedidoID string) (*entity.Comprobante, error) {
	return r.get(`WHERE pedido_id = $1 ORDER BY fecha_emision DESC LIMIT 1`, pedidoID)
}

func (r *ComprobanteRepo) get(where string, arg any) (*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteColumns + ` FROM comprobantes ` + where
	var c entity.Comprobante
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.PedidoID, &c.Tipo, &c.Numero, &c.FechaEmision,
		&c.MontoTotal, &c.Impuesto, &c.PDFURL, &c.Estado, &c.CodigoHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return &c, nil
}

// NextCorrelativo devuelve el siguiente correlativo de la serie. El upsert con
// RETURNING deja la fila de la serie bloqueada hasta el commit, así dos
// emisiones concurrentes sobre la misma serie no duplican número.
func (r *ComprobanteRepo) NextCorrelativo(serie string) (int64, error) {
	query := `
		INSERT INTO comprobante_series (serie, ultimo_correlativo)
		VALUES ($1, 1)
		ON CONFLICT (serie)
		DO UPDATE SET ultimo_correlativo = comprobante_series.ultimo_correlativo + 1
		RETURNING ultimo_correlativo`
	var correlativo int64
	if err := r.q.QueryRow(context.Background(), query, serie).Scan(&correlativo); err != nil {
		return 0, fmt.Errorf("next correlativo: %w", err)
	}
	return correlativo, nil
}

// UpdateEstado cambia el estado del comprobante.
func (r *ComprobanteRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE comprobantes SET estado = $2 WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado comprobante: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
