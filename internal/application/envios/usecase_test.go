package envios

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

type memEnvios struct {
	tarifas []*entity.TarifaEnvio
	envios  map[string]*entity.Envio // por pedido
}

func (m *memEnvios) CreateEmpresa(*entity.EmpresaEnvio) error      { return nil }
func (m *memEnvios) ListEmpresas() ([]*entity.EmpresaEnvio, error) { return nil, nil }
func (m *memEnvios) CreateRegion(*entity.Region) error             { return nil }
func (m *memEnvios) CreateCiudad(*entity.Ciudad) error             { return nil }
func (m *memEnvios) ListCiudades(string) ([]*entity.Ciudad, error) { return nil, nil }
func (m *memEnvios) CreateTarifa(t *entity.TarifaEnvio) error {
	m.tarifas = append(m.tarifas, t)
	return nil
}
func (m *memEnvios) FindTarifa(ciudadID string, pesoKg decimal.Decimal) (*entity.TarifaEnvio, error) {
	var mejor *entity.TarifaEnvio
	for _, t := range m.tarifas {
		if !t.Activo || t.CiudadID != ciudadID {
			continue
		}
		if t.PesoMinKg != nil && pesoKg.LessThan(*t.PesoMinKg) {
			continue
		}
		if t.PesoMaxKg != nil && pesoKg.GreaterThan(*t.PesoMaxKg) {
			continue
		}
		if mejor == nil || t.Costo.LessThan(mejor.Costo) {
			mejor = t
		}
	}
	return mejor, nil
}
func (m *memEnvios) CreateEnvio(e *entity.Envio) error {
	m.envios[e.PedidoID] = e
	return nil
}
func (m *memEnvios) GetEnvioByPedido(pedidoID string) (*entity.Envio, error) {
	return m.envios[pedidoID], nil
}
func (m *memEnvios) UpdateEnvio(e *entity.Envio) error {
	m.envios[e.PedidoID] = e
	return nil
}

type memPedidos struct{ pedidos map[string]*entity.Pedido }

func (m *memPedidos) Create(*entity.Pedido) error                         { return nil }
func (m *memPedidos) CreateItem(*entity.PedidoItem) error                 { return nil }
func (m *memPedidos) CreatePromocionAplicada(*entity.PromocionAplicada) error { return nil }
func (m *memPedidos) GetByID(id string) (*entity.Pedido, error)           { return m.pedidos[id], nil }
func (m *memPedidos) GetByCodigo(string) (*entity.Pedido, error)          { return nil, nil }
func (m *memPedidos) ItemsByPedido(string) ([]*entity.PedidoItem, error)  { return nil, nil }
func (m *memPedidos) PromocionesAplicadas(string) ([]*entity.PromocionAplicada, error) {
	return nil, nil
}
func (m *memPedidos) List(string, int, int) ([]*entity.Pedido, error) { return nil, nil }
func (m *memPedidos) UpdateEstado(id, estado string) error {
	p, ok := m.pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.Estado = estado
	return nil
}

func newTestEnvios(t *testing.T) (*EnviosUseCase, *memEnvios, *memPedidos) {
	t.Helper()
	e := &memEnvios{envios: map[string]*entity.Envio{}}
	p := &memPedidos{pedidos: map[string]*entity.Pedido{}}
	return NewEnviosUseCase(e, p), e, p
}

func peso(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCotizar_TramoDePeso(t *testing.T) {
	uc, e, _ := newTestEnvios(t)
	now := time.Now()

	_, err := uc.CrearTarifa(context.Background(), &entity.TarifaEnvio{
		CiudadID: "lima", EmpresaID: "olva", PesoMaxKg: peso("5"),
		Costo: decimal.RequireFromString("10.00"),
	}, now)
	require.NoError(t, err)
	_, err = uc.CrearTarifa(context.Background(), &entity.TarifaEnvio{
		CiudadID: "lima", EmpresaID: "olva", PesoMinKg: peso("5"), PesoMaxKg: nil,
		Costo: decimal.RequireFromString("25.00"),
	}, now)
	require.NoError(t, err)
	require.Len(t, e.tarifas, 2)

	liviano, err := uc.Cotizar(context.Background(), "lima", decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.True(t, liviano.Costo.Equal(decimal.RequireFromString("10.00")))

	pesado, err := uc.Cotizar(context.Background(), "lima", decimal.RequireFromString("12"))
	require.NoError(t, err)
	assert.True(t, pesado.Costo.Equal(decimal.RequireFromString("25.00")))

	_, err = uc.Cotizar(context.Background(), "cusco", decimal.RequireFromString("1"))
	assert.ErrorIs(t, err, domain.ErrNoEncontrado, "sin tarifa para la ciudad")
}

func TestCrearTarifa_TramoInvertido(t *testing.T) {
	uc, _, _ := newTestEnvios(t)
	_, err := uc.CrearTarifa(context.Background(), &entity.TarifaEnvio{
		CiudadID: "lima", EmpresaID: "olva",
		PesoMinKg: peso("10"), PesoMaxKg: peso("5"),
		Costo: decimal.RequireFromString("10.00"),
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestDespachar_YEntregar(t *testing.T) {
	uc, e, p := newTestEnvios(t)
	now := time.Now()
	p.pedidos["ped1"] = &entity.Pedido{ID: "ped1", Estado: entity.PedidoPagado}
	e.envios["ped1"] = &entity.Envio{ID: "env1", PedidoID: "ped1", EstadoEnvio: entity.EnvioPendiente}

	err := uc.Despachar(context.Background(), "ped1", "olva", "TRK-123", nil, now)
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioTransito, e.envios["ped1"].EstadoEnvio)
	assert.Equal(t, "TRK-123", e.envios["ped1"].Tracking)
	assert.Equal(t, entity.PedidoEnviado, p.pedidos["ped1"].Estado)

	err = uc.MarcarEntregado(context.Background(), "ped1", now)
	require.NoError(t, err)
	assert.Equal(t, entity.EnvioEntregado, e.envios["ped1"].EstadoEnvio)
	assert.Equal(t, entity.PedidoEntregado, p.pedidos["ped1"].Estado)
	require.NotNil(t, e.envios["ped1"].FechaEntregaReal)

	err = uc.MarcarEntregado(context.Background(), "ped1", now)
	assert.ErrorIs(t, err, domain.ErrConflicto, "ya entregado")
}

func TestDespachar_PedidoSinPagar(t *testing.T) {
	uc, e, p := newTestEnvios(t)
	p.pedidos["ped1"] = &entity.Pedido{ID: "ped1", Estado: entity.PedidoPendiente}
	e.envios["ped1"] = &entity.Envio{ID: "env1", PedidoID: "ped1", EstadoEnvio: entity.EnvioPendiente}

	err := uc.Despachar(context.Background(), "ped1", "olva", "TRK-1", nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflicto)
}
