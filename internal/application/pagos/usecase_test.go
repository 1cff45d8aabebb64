package pagos

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

type memPagos struct{ pagos map[string]*entity.Pago }

func (m *memPagos) Create(p *entity.Pago) error            { m.pagos[p.ID] = p; return nil }
func (m *memPagos) GetByID(id string) (*entity.Pago, error) { return m.pagos[id], nil }
func (m *memPagos) ListByPedido(string) ([]*entity.Pago, error) { return nil, nil }
func (m *memPagos) Update(p *entity.Pago) error            { m.pagos[p.ID] = p; return nil }

type memPedidos struct{ pedidos map[string]*entity.Pedido }

func (m *memPedidos) Create(*entity.Pedido) error                             { return nil }
func (m *memPedidos) CreateItem(*entity.PedidoItem) error                     { return nil }
func (m *memPedidos) CreatePromocionAplicada(*entity.PromocionAplicada) error { return nil }
func (m *memPedidos) GetByID(id string) (*entity.Pedido, error)               { return m.pedidos[id], nil }
func (m *memPedidos) GetByCodigo(string) (*entity.Pedido, error)              { return nil, nil }
func (m *memPedidos) ItemsByPedido(string) ([]*entity.PedidoItem, error)      { return nil, nil }
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

type memLogs struct{ logs []*entity.LogAccion }

func (m *memLogs) Create(l *entity.LogAccion) error { m.logs = append(m.logs, l); return nil }
func (m *memLogs) List(int, int) ([]*entity.LogAccion, error) {
	return m.logs, nil
}

func newTestPagos(t *testing.T) (*PagosUseCase, *memPagos, *memPedidos, *memLogs) {
	t.Helper()
	pagos := &memPagos{pagos: map[string]*entity.Pago{}}
	pedidos := &memPedidos{pedidos: map[string]*entity.Pedido{}}
	logs := &memLogs{}
	return NewPagosUseCase(pagos, pedidos, logs), pagos, pedidos, logs
}

func TestRegistrarYConfirmar(t *testing.T) {
	uc, pagos, pedidos, logs := newTestPagos(t)
	now := time.Now()
	pedidos.pedidos["ped1"] = &entity.Pedido{
		ID: "ped1", Estado: entity.PedidoPendiente,
		Total: decimal.RequireFromString("130.00"),
	}

	pago, err := uc.Registrar(context.Background(), RegistrarInput{
		PedidoID: "ped1", Metodo: entity.PagoYape, ComprobanteURL: "https://img/constancia.jpg",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, entity.PagoPendiente, pago.Estado)
	assert.True(t, pago.Monto.Equal(decimal.RequireFromString("130.00")), "el monto es el total del pedido")

	require.NoError(t, uc.Confirmar(context.Background(), pago.ID, "operador1", now))
	assert.Equal(t, entity.PagoConfirmado, pagos.pagos[pago.ID].Estado)
	assert.Equal(t, entity.PedidoPagado, pedidos.pedidos["ped1"].Estado)
	require.NotNil(t, pagos.pagos[pago.ID].UsuarioVerificadorID)
	assert.Equal(t, "operador1", *pagos.pagos[pago.ID].UsuarioVerificadorID)
	require.Len(t, logs.logs, 1)
	assert.Equal(t, "pago_confirmado", logs.logs[0].Accion)

	err = uc.Confirmar(context.Background(), pago.ID, "operador1", now)
	assert.ErrorIs(t, err, domain.ErrConflicto, "un pago resuelto no se reprocesa")
}

func TestRechazar_PedidoSiguePendiente(t *testing.T) {
	uc, pagos, pedidos, _ := newTestPagos(t)
	now := time.Now()
	pedidos.pedidos["ped1"] = &entity.Pedido{
		ID: "ped1", Estado: entity.PedidoPendiente,
		Total: decimal.RequireFromString("50.00"),
	}

	pago, err := uc.Registrar(context.Background(), RegistrarInput{PedidoID: "ped1", Metodo: entity.PagoPlin}, now)
	require.NoError(t, err)

	require.NoError(t, uc.Rechazar(context.Background(), pago.ID, "operador1", now))
	assert.Equal(t, entity.PagoRechazado, pagos.pagos[pago.ID].Estado)
	assert.Equal(t, entity.PedidoPendiente, pedidos.pedidos["ped1"].Estado, "el cliente puede reintentar")

	// Un segundo intento sobre el mismo pedido sigue permitido.
	_, err = uc.Registrar(context.Background(), RegistrarInput{PedidoID: "ped1", Metodo: entity.PagoYape}, now)
	assert.NoError(t, err)
}

func TestRegistrar_PedidoNoElegible(t *testing.T) {
	uc, _, pedidos, _ := newTestPagos(t)
	pedidos.pedidos["pagado"] = &entity.Pedido{ID: "pagado", Estado: entity.PedidoPagado}

	_, err := uc.Registrar(context.Background(), RegistrarInput{PedidoID: "pagado", Metodo: entity.PagoYape}, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflicto)

	_, err = uc.Registrar(context.Background(), RegistrarInput{PedidoID: "nope", Metodo: entity.PagoYape}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
