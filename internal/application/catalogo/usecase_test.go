package catalogo

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

type memCatalogo struct {
	categorias map[string]*entity.Categoria
	marcas     map[string]*entity.Marca
	productos  map[string]*entity.Producto
	variantes  map[string]*entity.ProductoVariante
	atributos  map[string]*entity.Atributo
	valores    []*entity.VarianteAtributo
	imagenes   []*entity.Imagen
}

func newMemCatalogo() *memCatalogo {
	return &memCatalogo{
		categorias: map[string]*entity.Categoria{},
		marcas:     map[string]*entity.Marca{},
		productos:  map[string]*entity.Producto{},
		variantes:  map[string]*entity.ProductoVariante{},
		atributos:  map[string]*entity.Atributo{},
	}
}

func (m *memCatalogo) Create(c *entity.Categoria) error { m.categorias[c.ID] = c; return nil }
func (m *memCatalogo) GetByID(id string) (*entity.Categoria, error) {
	return m.categorias[id], nil
}
func (m *memCatalogo) GetBySlug(slug string) (*entity.Categoria, error) {
	for _, c := range m.categorias {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCatalogo) List() ([]*entity.Categoria, error) { return nil, nil }

type memMarcas struct{ m *memCatalogo }

func (r *memMarcas) Create(ma *entity.Marca) error         { r.m.marcas[ma.ID] = ma; return nil }
func (r *memMarcas) GetByID(string) (*entity.Marca, error) { return nil, nil }
func (r *memMarcas) List() ([]*entity.Marca, error)        { return nil, nil }

type memProductos struct{ m *memCatalogo }

func (r *memProductos) Create(p *entity.Producto) error { r.m.productos[p.ID] = p; return nil }
func (r *memProductos) GetByID(id string) (*entity.Producto, error) {
	return r.m.productos[id], nil
}
func (r *memProductos) List(int, int) ([]*entity.Producto, error) { return nil, nil }
func (r *memProductos) Update(*entity.Producto) error             { return nil }

type memVariantes struct{ m *memCatalogo }

func (r *memVariantes) Create(v *entity.ProductoVariante) error { r.m.variantes[v.ID] = v; return nil }
func (r *memVariantes) GetByID(id string) (*entity.ProductoVariante, error) {
	return r.m.variantes[id], nil
}
func (r *memVariantes) GetBySKU(sku string) (*entity.ProductoVariante, error) {
	for _, v := range r.m.variantes {
		if v.SKU == sku {
			return v, nil
		}
	}
	return nil, nil
}
func (r *memVariantes) GetForUpdate(id string) (*entity.ProductoVariante, error) {
	return r.GetByID(id)
}
func (r *memVariantes) ListByProducto(string) ([]*entity.ProductoVariante, error) {
	return nil, nil
}
func (r *memVariantes) Update(*entity.ProductoVariante) error { return nil }
func (r *memVariantes) UpdateStock(string, int) error         { return nil }

type memAtributos struct{ m *memCatalogo }

func (r *memAtributos) Create(a *entity.Atributo) error { r.m.atributos[a.Codigo] = a; return nil }
func (r *memAtributos) GetByCodigo(codigo string) (*entity.Atributo, error) {
	return r.m.atributos[codigo], nil
}
func (r *memAtributos) List() ([]*entity.Atributo, error)               { return nil, nil }
func (r *memAtributos) SetValorProducto(*entity.ProductoAtributo) error { return nil }
func (r *memAtributos) SetValorVariante(v *entity.VarianteAtributo) error {
	r.m.valores = append(r.m.valores, v)
	return nil
}
func (r *memAtributos) ValoresByVariante(string) ([]*entity.VarianteAtributo, error) {
	return nil, nil
}

type memImagenes struct{ m *memCatalogo }

func (r *memImagenes) Create(img *entity.Imagen) error {
	r.m.imagenes = append(r.m.imagenes, img)
	return nil
}
func (r *memImagenes) ListByProducto(string) ([]*entity.Imagen, error) { return nil, nil }

func newTestCatalogo(t *testing.T) (*CatalogoUseCase, *memCatalogo) {
	t.Helper()
	m := newMemCatalogo()
	uc := NewCatalogoUseCase(m, &memMarcas{m}, &memProductos{m}, &memVariantes{m}, &memAtributos{m}, &memImagenes{m})
	return uc, m
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "electrodomesticos-de-cocina", Slugify("Electrodomésticos de Cocina"))
	assert.Equal(t, "ninos", Slugify("  Niños "))
	assert.Equal(t, "audio-video", Slugify("Audio & Video"))
}

func TestCrearCategoria_SlugDuplicado(t *testing.T) {
	uc, _ := newTestCatalogo(t)

	_, err := uc.CrearCategoria(context.Background(), &entity.Categoria{Nombre: "Bebidas"})
	require.NoError(t, err)

	_, err = uc.CrearCategoria(context.Background(), &entity.Categoria{Nombre: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestCrearCategoria_PadreInexistente(t *testing.T) {
	uc, _ := newTestCatalogo(t)
	padre := "nope"
	_, err := uc.CrearCategoria(context.Background(), &entity.Categoria{Nombre: "Hija", PadreID: &padre})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestCrearVariante_SKUUnicoYStockCero(t *testing.T) {
	uc, m := newTestCatalogo(t)
	now := time.Now()
	cat, err := uc.CrearCategoria(context.Background(), &entity.Categoria{Nombre: "Snacks"})
	require.NoError(t, err)
	prod, err := uc.CrearProducto(context.Background(), &entity.Producto{
		Nombre: "Papas", CategoriaID: cat.ID, PrecioBase: decimal.RequireFromString("3.50"),
	}, now)
	require.NoError(t, err)

	v, err := uc.CrearVariante(context.Background(), &entity.ProductoVariante{
		ProductoID: prod.ID, SKU: "PAP-180", Precio: decimal.RequireFromString("3.50"),
		Stock: 99, // se ignora: el stock solo se mueve por el libro
	}, now)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Stock)
	assert.True(t, v.Activo)

	_, err = uc.CrearVariante(context.Background(), &entity.ProductoVariante{
		ProductoID: prod.ID, SKU: "PAP-180", Precio: decimal.RequireFromString("4.00"),
	}, now)
	assert.ErrorIs(t, err, domain.ErrDuplicado)
	assert.Len(t, m.variantes, 1)
}

func TestSetAtributoVariante(t *testing.T) {
	uc, m := newTestCatalogo(t)
	m.variantes["v1"] = &entity.ProductoVariante{ID: "v1"}
	m.atributos["peso"] = &entity.Atributo{ID: "a1", Codigo: "peso", Tipo: entity.AtributoDecimal}

	num := decimal.RequireFromString("0.18")
	require.NoError(t, uc.SetAtributoVariante(context.Background(), "v1", "peso", "", &num))
	require.Len(t, m.valores, 1)
	assert.Equal(t, "a1", m.valores[0].AtributoID)

	err := uc.SetAtributoVariante(context.Background(), "v1", "color", "rojo", nil)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado, "atributo no registrado")
}

func TestAgregarImagen_ProductoOVarianteExclusivo(t *testing.T) {
	uc, m := newTestCatalogo(t)
	productoID, varianteID := "p1", "v1"

	err := uc.AgregarImagen(context.Background(), &entity.Imagen{URL: "https://img/x.jpg"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "sin dueño")

	err = uc.AgregarImagen(context.Background(), &entity.Imagen{
		URL: "https://img/x.jpg", ProductoID: &productoID, VarianteID: &varianteID,
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "ambos dueños")

	err = uc.AgregarImagen(context.Background(), &entity.Imagen{URL: "https://img/x.jpg", ProductoID: &productoID})
	require.NoError(t, err)
	assert.Len(t, m.imagenes, 1)
}
