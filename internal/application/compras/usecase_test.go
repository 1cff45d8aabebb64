package compras

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/application/inventory"
	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

type memProveedorRepo struct {
	proveedores map[string]*entity.Proveedor
}

func (r *memProveedorRepo) Create(p *entity.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}
func (r *memProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return r.proveedores[id], nil
}
func (r *memProveedorRepo) List() ([]*entity.Proveedor, error) { return nil, nil }
func (r *memProveedorRepo) Update(*entity.Proveedor) error     { return nil }

type memCompraRepo struct {
	compras map[string]*entity.Compra
	items   map[string][]*entity.CompraItem
}

func (r *memCompraRepo) Create(c *entity.Compra, items []*entity.CompraItem) error {
	r.compras[c.ID] = c
	r.items[c.ID] = items
	return nil
}
func (r *memCompraRepo) GetByID(id string) (*entity.Compra, error) { return r.compras[id], nil }
func (r *memCompraRepo) ItemsByCompra(compraID string) ([]*entity.CompraItem, error) {
	return r.items[compraID], nil
}
func (r *memCompraRepo) List(int, int) ([]*entity.Compra, error) { return nil, nil }
func (r *memCompraRepo) UpdateEstado(id, estado string) error {
	c, ok := r.compras[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	c.Estado = estado
	return nil
}

// receptorSpy registra las entradas pedidas al libro de inventario.
type receptorSpy struct {
	entradas []inventory.RecibirInput
	err      error
}

func (r *receptorSpy) Recibir(_ context.Context, in inventory.RecibirInput, _ time.Time) (*entity.Lote, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.entradas = append(r.entradas, in)
	return &entity.Lote{ID: "lote-" + in.VarianteID}, nil
}

func newTestCompras(t *testing.T) (*ComprasUseCase, *memProveedorRepo, *memCompraRepo, *receptorSpy) {
	t.Helper()
	proveedores := &memProveedorRepo{proveedores: map[string]*entity.Proveedor{}}
	compras := &memCompraRepo{compras: map[string]*entity.Compra{}, items: map[string][]*entity.CompraItem{}}
	spy := &receptorSpy{}
	return NewComprasUseCase(proveedores, compras, spy), proveedores, compras, spy
}

func TestCrearProveedor_ValidaRUC(t *testing.T) {
	uc, _, _, _ := newTestCompras(t)

	_, err := uc.CrearProveedor(context.Background(), &entity.Proveedor{Nombre: "Acme", RUC: "20100070971"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "dígito verificador incorrecto")

	p, err := uc.CrearProveedor(context.Background(), &entity.Proveedor{Nombre: "Acme", RUC: "20100070970"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
}

func TestCrear_CalculaTotalesPorLinea(t *testing.T) {
	uc, proveedores, compras, _ := newTestCompras(t)
	proveedores.proveedores["prov1"] = &entity.Proveedor{ID: "prov1", Nombre: "Acme"}
	varianteID := "v1"

	compra, err := uc.Crear(context.Background(), CrearInput{
		ProveedorID: "prov1",
		FechaCompra: time.Now(),
		Items: []ItemInput{{
			ProductoID:                 "p1",
			VarianteID:                 &varianteID,
			Presentacion:               "caja",
			UnidadesPorPresentacion:    12,
			CantidadPresentaciones:     2,
			UnidadesSueltas:            6,
			PrecioUnitarioPresentacion: decimal.RequireFromString("24.00"),
		}},
	})
	require.NoError(t, err)

	items := compras.items[compra.ID]
	require.Len(t, items, 1)
	assert.Equal(t, 30, items[0].CantidadUnidades, "2 cajas de 12 más 6 sueltas")
	assert.True(t, items[0].PrecioUnitarioUnidad.Equal(decimal.RequireFromString("2.00")))
	assert.True(t, items[0].Subtotal.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, compra.Total.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, compra.Impuestos.Equal(decimal.RequireFromString("9.15")), "IGV desglosado: 60×18/118")
	assert.Equal(t, entity.CompraPendiente, compra.Estado)
}

func TestCrear_ProveedorInexistente(t *testing.T) {
	uc, _, _, _ := newTestCompras(t)
	_, err := uc.Crear(context.Background(), CrearInput{
		ProveedorID: "nope",
		Items:       []ItemInput{{ProductoID: "p1", UnidadesSueltas: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestMarcarRecibida_GeneraEntradasPorLinea(t *testing.T) {
	uc, proveedores, compras, spy := newTestCompras(t)
	proveedores.proveedores["prov1"] = &entity.Proveedor{ID: "prov1", Nombre: "Acme"}
	v1, v2 := "v1", "v2"
	vence := time.Now().AddDate(0, 6, 0)

	compra, err := uc.Crear(context.Background(), CrearInput{
		ProveedorID: "prov1",
		FechaCompra: time.Now(),
		Items: []ItemInput{
			{ProductoID: "p1", VarianteID: &v1, UnidadesSueltas: 10, PrecioUnitarioPresentacion: decimal.RequireFromString("5.00")},
			{ProductoID: "p2", VarianteID: &v2, UnidadesSueltas: 4},
			{ProductoID: "p3", UnidadesSueltas: 3}, // sin variante: no entra al libro
		},
	})
	require.NoError(t, err)

	itemConVencimiento := compras.items[compra.ID][0].ID
	err = uc.MarcarRecibida(context.Background(), compra.ID, "u1",
		map[string]*time.Time{itemConVencimiento: &vence}, time.Now())
	require.NoError(t, err)

	require.Len(t, spy.entradas, 2, "solo las líneas con variante generan lote")
	assert.Equal(t, "v1", spy.entradas[0].VarianteID)
	assert.Equal(t, 10, spy.entradas[0].Cantidad)
	require.NotNil(t, spy.entradas[0].FechaVencimiento)
	assert.Equal(t, vence, *spy.entradas[0].FechaVencimiento)
	assert.Nil(t, spy.entradas[1].FechaVencimiento)
	assert.Equal(t, entity.CompraRecibida, compras.compras[compra.ID].Estado)

	// Recibir dos veces no duplica lotes.
	err = uc.MarcarRecibida(context.Background(), compra.ID, "u1", nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrConflicto)
	assert.Len(t, spy.entradas, 2)
}

func TestCancelar(t *testing.T) {
	uc, proveedores, compras, _ := newTestCompras(t)
	proveedores.proveedores["prov1"] = &entity.Proveedor{ID: "prov1", Nombre: "Acme"}

	compra, err := uc.Crear(context.Background(), CrearInput{
		ProveedorID: "prov1",
		Items:       []ItemInput{{ProductoID: "p1", UnidadesSueltas: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Cancelar(context.Background(), compra.ID))
	assert.Equal(t, entity.CompraCancelada, compras.compras[compra.ID].Estado)

	err = uc.Cancelar(context.Background(), compra.ID)
	assert.ErrorIs(t, err, domain.ErrConflicto)
}
