package envios

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// EnviosUseCase couriers, geografía, tarifas por tramo de peso y el ciclo de
// vida del despacho de un pedido.
type EnviosUseCase struct {
	envioRepo  repository.EnvioRepository
	pedidoRepo repository.PedidoRepository
}

func NewEnviosUseCase(envioRepo repository.EnvioRepository, pedidoRepo repository.PedidoRepository) *EnviosUseCase {
	return &EnviosUseCase{envioRepo: envioRepo, pedidoRepo: pedidoRepo}
}

// CrearTarifa registra una tarifa activa para una ciudad y tramo de peso.
func (uc *EnviosUseCase) CrearTarifa(ctx context.Context, t *entity.TarifaEnvio, now time.Time) (*entity.TarifaEnvio, error) {
	if t.CiudadID == "" || t.EmpresaID == "" || t.Costo.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if t.PesoMinKg != nil && t.PesoMaxKg != nil && t.PesoMinKg.GreaterThan(*t.PesoMaxKg) {
		return nil, domain.ErrEntradaInvalida
	}
	t.ID = uuid.New().String()
	t.Activo = true
	t.FechaActualizacion = now
	if err := uc.envioRepo.CreateTarifa(t); err != nil {
		return nil, err
	}
	return t, nil
}

// CrearEmpresa registra un courier.
func (uc *EnviosUseCase) CrearEmpresa(ctx context.Context, e *entity.EmpresaEnvio) (*entity.EmpresaEnvio, error) {
	if e.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	e.ID = uuid.New().String()
	if err := uc.envioRepo.CreateEmpresa(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmpresas devuelve todos los couriers.
func (uc *EnviosUseCase) ListEmpresas(ctx context.Context) ([]*entity.EmpresaEnvio, error) {
	return uc.envioRepo.ListEmpresas()
}

// CrearRegion registra una región.
func (uc *EnviosUseCase) CrearRegion(ctx context.Context, r *entity.Region) (*entity.Region, error) {
	if r.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	r.ID = uuid.New().String()
	if err := uc.envioRepo.CreateRegion(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CrearCiudad registra una ciudad dentro de una región.
func (uc *EnviosUseCase) CrearCiudad(ctx context.Context, c *entity.Ciudad) (*entity.Ciudad, error) {
	if c.Nombre == "" || c.RegionID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	c.ID = uuid.New().String()
	if err := uc.envioRepo.CreateCiudad(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCiudades devuelve las ciudades de una región.
func (uc *EnviosUseCase) ListCiudades(ctx context.Context, regionID string) ([]*entity.Ciudad, error) {
	return uc.envioRepo.ListCiudades(regionID)
}

// GetEnvioByPedido devuelve el envío de un pedido (nil si no existe).
func (uc *EnviosUseCase) GetEnvioByPedido(ctx context.Context, pedidoID string) (*entity.Envio, error) {
	return uc.envioRepo.GetEnvioByPedido(pedidoID)
}

// Cotizar devuelve el costo de envío para una ciudad y peso, o ErrNoEncontrado
// si ninguna tarifa activa cubre ese tramo.
func (uc *EnviosUseCase) Cotizar(ctx context.Context, ciudadID string, pesoKg decimal.Decimal) (*entity.TarifaEnvio, error) {
	if ciudadID == "" || pesoKg.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	tarifa, err := uc.envioRepo.FindTarifa(ciudadID, pesoKg)
	if err != nil {
		return nil, err
	}
	if tarifa == nil {
		return nil, domain.ErrNoEncontrado
	}
	return tarifa, nil
}

// Despachar asigna courier y tracking al envío del pedido y lo pone en
// tránsito; el pedido pasa a enviado. Solo pedidos pagados o en preparación.
func (uc *EnviosUseCase) Despachar(ctx context.Context, pedidoID, empresaID, tracking string, entregaEstimada *time.Time, now time.Time) error {
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNoEncontrado
	}
	if pedido.Estado != entity.PedidoPagado && pedido.Estado != entity.PedidoPreparando {
		return domain.ErrConflicto
	}
	envio, err := uc.envioRepo.GetEnvioByPedido(pedidoID)
	if err != nil {
		return err
	}
	if envio == nil {
		return domain.ErrNoEncontrado
	}

	envio.EmpresaID = &empresaID
	envio.Tracking = tracking
	envio.EstadoEnvio = entity.EnvioTransito
	envio.FechaEnvio = &now
	envio.FechaEntregaEstimada = entregaEstimada
	if err := uc.envioRepo.UpdateEnvio(envio); err != nil {
		return err
	}
	return uc.pedidoRepo.UpdateEstado(pedidoID, entity.PedidoEnviado)
}

// MarcarEntregado cierra el envío y el pedido.
func (uc *EnviosUseCase) MarcarEntregado(ctx context.Context, pedidoID string, now time.Time) error {
	envio, err := uc.envioRepo.GetEnvioByPedido(pedidoID)
	if err != nil {
		return err
	}
	if envio == nil {
		return domain.ErrNoEncontrado
	}
	if envio.EstadoEnvio != entity.EnvioTransito {
		return domain.ErrConflicto
	}
	envio.EstadoEnvio = entity.EnvioEntregado
	envio.FechaEntregaReal = &now
	if err := uc.envioRepo.UpdateEnvio(envio); err != nil {
		return err
	}
	return uc.pedidoRepo.UpdateEstado(pedidoID, entity.PedidoEntregado)
}
