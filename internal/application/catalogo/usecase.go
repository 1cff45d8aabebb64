package catalogo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var slugInvalido = regexp.MustCompile(`[^a-z0-9]+`)

// CatalogoUseCase administración del catálogo: categorías, marcas, productos,
// variantes, atributos e imágenes.
type CatalogoUseCase struct {
	categoriaRepo repository.CategoriaRepository
	marcaRepo     repository.MarcaRepository
	productoRepo  repository.ProductoRepository
	varianteRepo  repository.VarianteRepository
	atributoRepo  repository.AtributoRepository
	imagenRepo    repository.ImagenRepository
}

func NewCatalogoUseCase(
	categoriaRepo repository.CategoriaRepository,
	marcaRepo repository.MarcaRepository,
	productoRepo repository.ProductoRepository,
	varianteRepo repository.VarianteRepository,
	atributoRepo repository.AtributoRepository,
	imagenRepo repository.ImagenRepository,
) *CatalogoUseCase {
	return &CatalogoUseCase{
		categoriaRepo: categoriaRepo,
		marcaRepo:     marcaRepo,
		productoRepo:  productoRepo,
		varianteRepo:  varianteRepo,
		atributoRepo:  atributoRepo,
		imagenRepo:    imagenRepo,
	}
}

// CrearCategoria genera el slug a partir del nombre si no viene dado y verifica
// que no choque con uno existente.
func (uc *CatalogoUseCase) CrearCategoria(ctx context.Context, c *entity.Categoria) (*entity.Categoria, error) {
	if c.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Nombre)
	}
	existente, err := uc.categoriaRepo.GetBySlug(c.Slug)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	if c.PadreID != nil {
		padre, err := uc.categoriaRepo.GetByID(*c.PadreID)
		if err != nil {
			return nil, err
		}
		if padre == nil {
			return nil, domain.ErrNoEncontrado
		}
	}
	c.ID = uuid.New().String()
	if err := uc.categoriaRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CrearMarca persiste una marca nueva.
func (uc *CatalogoUseCase) CrearMarca(ctx context.Context, m *entity.Marca) (*entity.Marca, error) {
	if m.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	m.ID = uuid.New().String()
	if err := uc.marcaRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CrearProducto da de alta un producto activo en la categoría indicada.
func (uc *CatalogoUseCase) CrearProducto(ctx context.Context, p *entity.Producto, now time.Time) (*entity.Producto, error) {
	if p.Nombre == "" || p.CategoriaID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if p.PrecioBase.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	categoria, err := uc.categoriaRepo.GetByID(p.CategoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNoEncontrado
	}
	p.ID = uuid.New().String()
	p.Activo = true
	p.FechaCreacion = now
	if err := uc.productoRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CrearVariante da de alta una variante con stock cero; el stock solo se mueve
// por el libro de inventario. El SKU debe ser único.
func (uc *CatalogoUseCase) CrearVariante(ctx context.Context, v *entity.ProductoVariante, now time.Time) (*entity.ProductoVariante, error) {
	if v.ProductoID == "" || v.SKU == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if v.Precio.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	producto, err := uc.productoRepo.GetByID(v.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}
	existente, err := uc.varianteRepo.GetBySKU(v.SKU)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	v.ID = uuid.New().String()
	v.Stock = 0
	v.Activo = true
	v.FechaCreacion = now
	if err := uc.varianteRepo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetAtributoVariante fija el valor de un atributo sobre una variante.
func (uc *CatalogoUseCase) SetAtributoVariante(ctx context.Context, varianteID, codigoAtributo, valorTexto string, valorNum *decimal.Decimal) error {
	variante, err := uc.varianteRepo.GetByID(varianteID)
	if err != nil {
		return err
	}
	if variante == nil {
		return domain.ErrNoEncontrado
	}
	atributo, err := uc.atributoRepo.GetByCodigo(codigoAtributo)
	if err != nil {
		return err
	}
	if atributo == nil {
		return domain.ErrNoEncontrado
	}
	return uc.atributoRepo.SetValorVariante(&entity.VarianteAtributo{
		ID:         uuid.New().String(),
		VarianteID: varianteID,
		AtributoID: atributo.ID,
		ValorText:  valorTexto,
		ValorNum:   valorNum,
	})
}

// AgregarImagen asocia una imagen a un producto o a una variante, nunca a ambos.
func (uc *CatalogoUseCase) AgregarImagen(ctx context.Context, img *entity.Imagen) error {
	if img.URL == "" {
		return domain.ErrEntradaInvalida
	}
	if (img.ProductoID == nil) == (img.VarianteID == nil) {
		return domain.ErrEntradaInvalida
	}
	img.ID = uuid.New().String()
	return uc.imagenRepo.Create(img)
}

// ListCategorias devuelve todas las categorías.
func (uc *CatalogoUseCase) ListCategorias(ctx context.Context) ([]*entity.Categoria, error) {
	return uc.categoriaRepo.List()
}

// ListMarcas devuelve todas las marcas.
func (uc *CatalogoUseCase) ListMarcas(ctx context.Context) ([]*entity.Marca, error) {
	return uc.marcaRepo.List()
}

// GetProducto devuelve un producto por ID (nil si no existe).
func (uc *CatalogoUseCase) GetProducto(ctx context.Context, id string) (*entity.Producto, error) {
	return uc.productoRepo.GetByID(id)
}

// ListProductos devuelve productos paginados.
func (uc *CatalogoUseCase) ListProductos(ctx context.Context, limit, offset int) ([]*entity.Producto, error) {
	return uc.productoRepo.List(limit, offset)
}

// VariantesByProducto devuelve las variantes de un producto.
func (uc *CatalogoUseCase) VariantesByProducto(ctx context.Context, productoID string) ([]*entity.ProductoVariante, error) {
	return uc.varianteRepo.ListByProducto(productoID)
}

// ImagenesByProducto devuelve las imágenes del producto y de sus variantes.
func (uc *CatalogoUseCase) ImagenesByProducto(ctx context.Context, productoID string) ([]*entity.Imagen, error) {
	return uc.imagenRepo.ListByProducto(productoID)
}

// Slugify normaliza un nombre a slug: minúsculas, guiones, sin signos.
func Slugify(nombre string) string {
	s := strings.ToLower(strings.TrimSpace(nombre))
	reemplazos := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
	)
	s = reemplazos.Replace(s)
	s = slugInvalido.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
