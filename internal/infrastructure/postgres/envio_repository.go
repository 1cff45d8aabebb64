package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.EnvioRepository = (*EnvioRepo)(nil)

// EnvioRepo implementación sobre PostgreSQL para couriers, geografía, tarifas
// y envíos.
type EnvioRepo struct {
	q Querier
}

// NewEnvioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEnvioRepository(q Querier) *EnvioRepo {
	return &EnvioRepo{q: q}
}

// CreateEmpresa persiste un courier.
func (r *EnvioRepo) CreateEmpresa(empresa *entity.EmpresaEnvio) error {
	if empresa.ID == "" {
		empresa.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO empresas_envio (id, nombre, telefono, api_endpoint) VALUES ($1, $2, $3, $4)`,
		empresa.ID, empresa.Nombre, empresa.Telefono, empresa.APIEndpoint,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create empresa envio: %w", err)
	}
	return nil
}

// ListEmpresas devuelve todos los couriers.
func (r *EnvioRepo) ListEmpresas() ([]*entity.EmpresaEnvio, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, telefono, api_endpoint FROM empresas_envio ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list empresas envio: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmpresaEnvio
	for rows.Next() {
		var e entity.EmpresaEnvio
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Telefono, &e.APIEndpoint); err != nil {
			return nil, fmt.Errorf("scan empresa envio: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// CreateRegion persiste una región.
func (r *EnvioRepo) CreateRegion(region *entity.Region) error {
	if region.ID == "" {
		region.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO regiones (id, nombre) VALUES ($1, $2)`, region.ID, region.Nombre)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create region: %w", err)
	}
	return nil
}

// CreateCiudad persiste una ciudad.
func (r *EnvioRepo) CreateCiudad(ciudad *entity.Ciudad) error {
	if ciudad.ID == "" {
		ciudad.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO ciudades (id, nombre, region_id) VALUES ($1, $2, $3)`,
		ciudad.ID, ciudad.Nombre, ciudad.RegionID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create ciudad: %w", err)
	}
	return nil
}

// ListCiudades devuelve las ciudades de una región.
func (r *EnvioRepo) ListCiudades(regionID string) ([]*entity.Ciudad, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, region_id FROM ciudades WHERE region_id = $1 ORDER BY nombre`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list ciudades: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ciudad
	for rows.Next() {
		var c entity.Ciudad
		if err := rows.Scan(&c.ID, &c.Nombre, &c.RegionID); err != nil {
			return nil, fmt.Errorf("scan ciudad: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

const tarifaColumns = `id, ciudad_id, empresa_id, peso_min_kg, peso_max_kg, costo, activo, fecha_actualizacion`

// CreateTarifa persiste una tarifa de envío.
func (r *EnvioRepo) CreateTarifa(tarifa *entity.TarifaEnvio) error {
	if tarifa.ID == "" {
		tarifa.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tarifas_envio (` + tarifaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		tarifa.ID, tarifa.CiudadID, tarifa.EmpresaID, tarifa.PesoMinKg, tarifa.PesoMaxKg,
		tarifa.Costo, tarifa.Activo, tarifa.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("create tarifa: %w", err)
	}
	return nil
}

// FindTarifa devuelve la tarifa activa más barata para la ciudad cuyo tramo de
// peso contiene pesoKg (límites nulos = sin tope en ese extremo).
func (r *EnvioRepo) FindTarifa(ciudadID string, pesoKg decimal.Decimal) (*entity.TarifaEnvio, error) {
	query := `
		SELECT ` + tarifaColumns + ` FROM tarifas_envio
		WHERE ciudad_id = $1 AND activo
			AND (peso_min_kg IS NULL OR peso_min_kg <= $2)
			AND (peso_max_kg IS NULL OR peso_max_kg >= $2)
		ORDER BY costo, id LIMIT 1`
	var t entity.TarifaEnvio
	err := r.q.QueryRow(context.Background(), query, ciudadID, pesoKg).Scan(
		&t.ID, &t.CiudadID, &t.EmpresaID, &t.PesoMinKg, &t.PesoMaxKg,
		&t.Costo, &t.Activo, &t.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tarifa: %w", err)
	}
	return &t, nil
}

const envioColumns = `id, pedido_id, empresa_id, ciudad_id, direccion, tracking, costo_envio,
		estado_envio, fecha_envio, fecha_entrega_estimada, fecha_entrega_real`

// CreateEnvio persiste un envío.
func (r *EnvioRepo) CreateEnvio(envio *entity.Envio) error {
	if envio.ID == "" {
		envio.ID = uuid.New().String()
	}
	query := `
		INSERT INTO envios (` + envioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		envio.ID, envio.PedidoID, envio.EmpresaID, envio.CiudadID, envio.Direccion,
		envio.Tracking, envio.CostoEnvio, envio.EstadoEnvio, envio.FechaEnvio,
		envio.FechaEntregaEstimada, envio.FechaEntregaReal,
	)
	if err != nil {
		return fmt.Errorf("create envio: %w", err)
	}
	return nil
}

// GetEnvioByPedido obtiene el envío de un pedido.
func (r *EnvioRepo) GetEnvioByPedido(pedidoID string) (*entity.Envio, error) {
	query := `SELECT ` + envioColumns + ` FROM envios WHERE pedido_id = $1`
	var e entity.Envio
	err := r.q.QueryRow(context.Background(), query, pedidoID).Scan(
		&e.ID, &e.PedidoID, &e.EmpresaID, &e.CiudadID, &e.Direccion, &e.Tracking,
		&e.CostoEnvio, &e.EstadoEnvio, &e.FechaEnvio, &e.FechaEntregaEstimada, &e.FechaEntregaReal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get envio: %w", err)
	}
	return &e, nil
}

// UpdateEnvio actualiza un envío (despacho, entrega, tracking).
func (r *EnvioRepo) UpdateEnvio(envio *entity.Envio) error {
	query := `
		UPDATE envios SET empresa_id = $2, tracking = $3, estado_envio = $4, fecha_envio = $5,
			fecha_entrega_estimada = $6, fecha_entrega_real = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		envio.ID, envio.EmpresaID, envio.Tracking, envio.EstadoEnvio,
		envio.FechaEnvio, envio.FechaEntregaEstimada, envio.FechaEntregaReal,
	)
	if err != nil {
		return fmt.Errorf("update envio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
