package carrito

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

type memCarritos struct {
	carritos map[string]*entity.Carrito
	items    []*entity.CarritoItem
}

func (m *memCarritos) Create(c *entity.Carrito) error { m.carritos[c.ID] = c; return nil }
func (m *memCarritos) GetByID(id string) (*entity.Carrito, error) {
	return m.carritos[id], nil
}
func (m *memCarritos) GetActivoByUsuario(usuarioID string) (*entity.Carrito, error) {
	for _, c := range m.carritos {
		if c.Activo && c.UsuarioID != nil && *c.UsuarioID == usuarioID {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCarritos) Update(c *entity.Carrito) error { m.carritos[c.ID] = c; return nil }
func (m *memCarritos) AddItem(item *entity.CarritoItem) error {
	m.items = append(m.items, item)
	return nil
}
func (m *memCarritos) UpdateItem(item *entity.CarritoItem) error {
	for i, it := range m.items {
		if it.ID == item.ID {
			m.items[i] = item
			return nil
		}
	}
	return domain.ErrNoEncontrado
}
func (m *memCarritos) RemoveItem(itemID string) error {
	for i, it := range m.items {
		if it.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoEncontrado
}
func (m *memCarritos) ItemsByCarrito(carritoID string) ([]*entity.CarritoItem, error) {
	var out []*entity.CarritoItem
	for _, it := range m.items {
		if it.CarritoID == carritoID {
			out = append(out, it)
		}
	}
	return out, nil
}

type memVariantes struct{ variantes map[string]*entity.ProductoVariante }

func (m *memVariantes) Create(*entity.ProductoVariante) error { return nil }
func (m *memVariantes) GetByID(id string) (*entity.ProductoVariante, error) {
	return m.variantes[id], nil
}
func (m *memVariantes) GetBySKU(string) (*entity.ProductoVariante, error) { return nil, nil }
func (m *memVariantes) GetForUpdate(id string) (*entity.ProductoVariante, error) {
	return m.GetByID(id)
}
func (m *memVariantes) ListByProducto(string) ([]*entity.ProductoVariante, error) {
	return nil, nil
}
func (m *memVariantes) Update(*entity.ProductoVariante) error { return nil }
func (m *memVariantes) UpdateStock(string, int) error         { return nil }

func newTestCarrito(t *testing.T) (*CarritoUseCase, *memCarritos, *memVariantes) {
	t.Helper()
	c := &memCarritos{carritos: map[string]*entity.Carrito{}}
	v := &memVariantes{variantes: map[string]*entity.ProductoVariante{}}
	return NewCarritoUseCase(c, v), c, v
}

func TestObtenerOCrear_ReusaElActivo(t *testing.T) {
	uc, _, _ := newTestCarrito(t)
	now := time.Now()

	primero, err := uc.ObtenerOCrear(context.Background(), "u1", "s1", now)
	require.NoError(t, err)
	segundo, err := uc.ObtenerOCrear(context.Background(), "u1", "s2", now)
	require.NoError(t, err)
	assert.Equal(t, primero.ID, segundo.ID, "un solo carrito activo por usuario")

	anonimo, err := uc.ObtenerOCrear(context.Background(), "", "s3", now)
	require.NoError(t, err)
	assert.Nil(t, anonimo.UsuarioID)
	assert.NotEqual(t, primero.ID, anonimo.ID)
}

func TestAgregarItem_CongelaPrecioYAcumula(t *testing.T) {
	uc, carritos, variantes := newTestCarrito(t)
	now := time.Now()
	variantes.variantes["v1"] = &entity.ProductoVariante{
		ID: "v1", Activo: true, Precio: decimal.RequireFromString("9.90"),
	}
	carrito, err := uc.ObtenerOCrear(context.Background(), "u1", "s1", now)
	require.NoError(t, err)

	item, err := uc.AgregarItem(context.Background(), carrito.ID, "v1", 2, now)
	require.NoError(t, err)
	assert.True(t, item.PrecioUnitarioSnapshot.Equal(decimal.RequireFromString("9.90")))

	// El precio de la variante sube; el snapshot de la línea no cambia.
	variantes.variantes["v1"].Precio = decimal.RequireFromString("12.00")
	item, err = uc.AgregarItem(context.Background(), carrito.ID, "v1", 3, now)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Cantidad, "misma variante acumula en la línea")
	assert.True(t, item.PrecioUnitarioSnapshot.Equal(decimal.RequireFromString("9.90")))
	assert.Len(t, carritos.items, 1)
}

func TestAgregarItem_VarianteInactiva(t *testing.T) {
	uc, _, variantes := newTestCarrito(t)
	now := time.Now()
	variantes.variantes["v1"] = &entity.ProductoVariante{ID: "v1", Activo: false}
	carrito, err := uc.ObtenerOCrear(context.Background(), "u1", "s1", now)
	require.NoError(t, err)

	_, err = uc.AgregarItem(context.Background(), carrito.ID, "v1", 1, now)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestCarritoCerradoNoSeModifica(t *testing.T) {
	uc, carritos, variantes := newTestCarrito(t)
	now := time.Now()
	variantes.variantes["v1"] = &entity.ProductoVariante{ID: "v1", Activo: true}
	carrito, err := uc.ObtenerOCrear(context.Background(), "u1", "s1", now)
	require.NoError(t, err)
	carritos.carritos[carrito.ID].Activo = false

	_, err = uc.AgregarItem(context.Background(), carrito.ID, "v1", 1, now)
	assert.ErrorIs(t, err, domain.ErrPedidoNoEditable)

	err = uc.AplicarCupon(context.Background(), carrito.ID, "VERANO", now)
	assert.ErrorIs(t, err, domain.ErrPedidoNoEditable)
}

func TestQuitarItemYAplicarCupon(t *testing.T) {
	uc, carritos, variantes := newTestCarrito(t)
	now := time.Now()
	variantes.variantes["v1"] = &entity.ProductoVariante{
		ID: "v1", Activo: true, Precio: decimal.RequireFromString("5.00"),
	}
	carrito, err := uc.ObtenerOCrear(context.Background(), "u1", "s1", now)
	require.NoError(t, err)
	item, err := uc.AgregarItem(context.Background(), carrito.ID, "v1", 1, now)
	require.NoError(t, err)

	require.NoError(t, uc.QuitarItem(context.Background(), carrito.ID, item.ID, now))
	assert.Empty(t, carritos.items)

	require.NoError(t, uc.AplicarCupon(context.Background(), carrito.ID, "VERANO15", now))
	assert.Equal(t, "VERANO15", carritos.carritos[carrito.ID].CuponCodigo)
}
