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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación sobre PostgreSQL (usable con pool o tx).
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	if categoria.ID == "" {
		categoria.ID = uuid.New().String()
	}
	query := `
		INSERT INTO categorias (id, nombre, slug, padre_id, descripcion, imagen_url_base)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Slug, categoria.PadreID,
		categoria.Descripcion, categoria.ImagenURLBase,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetBySlug obtiene una categoría por su slug único.
func (r *CategoriaRepo) GetBySlug(slug string) (*entity.Categoria, error) {
	return r.get(`WHERE slug = $1`, slug)
}

func (r *CategoriaRepo) get(where string, arg any) (*entity.Categoria, error) {
	query := `SELECT id, nombre, slug, padre_id, descripcion, imagen_url_base FROM categorias ` + where
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Nombre, &c.Slug, &c.PadreID, &c.Descripcion, &c.ImagenURLBase,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoriaRepo) List() ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, slug, padre_id, descripcion, imagen_url_base FROM categorias ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Slug, &c.PadreID, &c.Descripcion, &c.ImagenURLBase); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

var _ repository.MarcaRepository = (*MarcaRepo)(nil)

// MarcaRepo implementación sobre PostgreSQL.
type MarcaRepo struct {
	q Querier
}

func NewMarcaRepository(q Querier) *MarcaRepo {
	return &MarcaRepo{q: q}
}

func (r *MarcaRepo) Create(marca *entity.Marca) error {
	if marca.ID == "" {
		marca.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO marcas (id, nombre, imagen_logo) VALUES ($1, $2, $3)`,
		marca.ID, marca.Nombre, marca.ImagenLogo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create marca: %w", err)
	}
	return nil
}

func (r *MarcaRepo) GetByID(id string) (*entity.Marca, error) {
	var m entity.Marca
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, imagen_logo FROM marcas WHERE id = $1`, id,
	).Scan(&m.ID, &m.Nombre, &m.ImagenLogo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get marca: %w", err)
	}
	return &m, nil
}

func (r *MarcaRepo) List() ([]*entity.Marca, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, imagen_logo FROM marcas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list marcas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Marca
	for rows.Next() {
		var m entity.Marca
		if err := rows.Scan(&m.ID, &m.Nombre, &m.ImagenLogo); err != nil {
			return nil, fmt.Errorf("scan marca: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, categoria_id, marca_id, nombre, descripcion, sku_base, precio_base,
		peso_kg, volumen_m3, activo, fecha_creacion, fecha_actualizacion`

// Create persiste un producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	if producto.ID == "" {
		producto.ID = uuid.New().String()
	}
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.CategoriaID, producto.MarcaID, producto.Nombre,
		producto.Descripcion, producto.SKUBase, producto.PrecioBase,
		producto.PesoKg, producto.VolumenM3, producto.Activo,
		producto.FechaCreacion, producto.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CategoriaID, &p.MarcaID, &p.Nombre, &p.Descripcion, &p.SKUBase,
		&p.PrecioBase, &p.PesoKg, &p.VolumenM3, &p.Activo, &p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List devuelve productos paginados, más recientes primero.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY fecha_creacion DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.CategoriaID, &p.MarcaID, &p.Nombre, &p.Descripcion, &p.SKUBase,
			&p.PrecioBase, &p.PesoKg, &p.VolumenM3, &p.Activo, &p.FechaCreacion, &p.FechaActualizacion); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de un producto.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET categoria_id = $2, marca_id = $3, nombre = $4, descripcion = $5,
			sku_base = $6, precio_base = $7, peso_kg = $8, volumen_m3 = $9, activo = $10,
			fecha_actualizacion = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.CategoriaID, producto.MarcaID, producto.Nombre,
		producto.Descripcion, producto.SKUBase, producto.PrecioBase,
		producto.PesoKg, producto.VolumenM3, producto.Activo, producto.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

var _ repository.VarianteRepository = (*VarianteRepo)(nil)

// VarianteRepo implementación sobre PostgreSQL. GetForUpdate bloquea la fila
// para serializar las mutaciones del libro de inventario por variante.
type VarianteRepo struct {
	q Querier
}

func NewVarianteRepository(q Querier) *VarianteRepo {
	return &VarianteRepo{q: q}
}

const varianteColumns = `id, producto_id, sku, precio, stock, peso_kg, activo, fecha_creacion, fecha_actualizacion`

// Create persiste una variante.
func (r *VarianteRepo) Create(variante *entity.ProductoVariante) error {
	if variante.ID == "" {
		variante.ID = uuid.New().String()
	}
	query := `
		INSERT INTO producto_variantes (` + varianteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		variante.ID, variante.ProductoID, variante.SKU, variante.Precio,
		variante.Stock, variante.PesoKg, variante.Activo,
		variante.FechaCreacion, variante.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create variante: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VarianteRepo) GetByID(id string) (*entity.ProductoVariante, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetBySKU obtiene una variante por su SKU único.
func (r *VarianteRepo) GetBySKU(sku string) (*entity.ProductoVariante, error) {
	return r.get(`WHERE sku = $1`, sku)
}

// GetForUpdate bloquea y devuelve la fila de la variante (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *VarianteRepo) GetForUpdate(id string) (*entity.ProductoVariante, error) {
	return r.get(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *VarianteRepo) get(where string, arg any) (*entity.ProductoVariante, error) {
	query := `SELECT ` + varianteColumns + ` FROM producto_variantes ` + where
	var v entity.ProductoVariante
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.ProductoID, &v.SKU, &v.Precio, &v.Stock, &v.PesoKg,
		&v.Activo, &v.FechaCreacion, &v.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variante: %w", err)
	}
	return &v, nil
}

// ListByProducto devuelve las variantes de un producto.
func (r *VarianteRepo) ListByProducto(productoID string) ([]*entity.ProductoVariante, error) {
	query := `SELECT ` + varianteColumns + ` FROM producto_variantes WHERE producto_id = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list variantes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductoVariante
	for rows.Next() {
		var v entity.ProductoVariante
		if err := rows.Scan(&v.ID, &v.ProductoID, &v.SKU, &v.Precio, &v.Stock, &v.PesoKg,
			&v.Activo, &v.FechaCreacion, &v.FechaActualizacion); err != nil {
			return nil, fmt.Errorf("scan variante: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de una variante. El stock no se toca
// aquí: solo lo mueve el libro de inventario vía UpdateStock.
func (r *VarianteRepo) Update(variante *entity.ProductoVariante) error {
	query := `
		UPDATE producto_variantes SET sku = $2, precio = $3, peso_kg = $4, activo = $5,
			fecha_actualizacion = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		variante.ID, variante.SKU, variante.Precio, variante.PesoKg,
		variante.Activo, variante.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update variante: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// UpdateStock fija el agregado cacheado de stock de la variante.
func (r *VarianteRepo) UpdateStock(id string, stock int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE producto_variantes SET stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

var _ repository.AtributoRepository = (*AtributoRepo)(nil)

// AtributoRepo implementación sobre PostgreSQL para atributos y sus valores.
type AtributoRepo struct {
	q Querier
}

func NewAtributoRepository(q Querier) *AtributoRepo {
	return &AtributoRepo{q: q}
}

// Create persiste un atributo.
func (r *AtributoRepo) Create(atributo *entity.Atributo) error {
	if atributo.ID == "" {
		atributo.ID = uuid.New().String()
	}
	query := `
		INSERT INTO atributos (id, nombre, codigo, tipo, unidad, es_variacion, orden_visual)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		atributo.ID, atributo.Nombre, atributo.Codigo, atributo.Tipo,
		atributo.Unidad, atributo.EsVariacion, atributo.OrdenVisual,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create atributo: %w", err)
	}
	return nil
}

// GetByCodigo obtiene un atributo por su código único.
func (r *AtributoRepo) GetByCodigo(codigo string) (*entity.Atributo, error) {
	query := `SELECT id, nombre, codigo, tipo, unidad, es_variacion, orden_visual FROM atributos WHERE codigo = $1`
	var a entity.Atributo
	err := r.q.QueryRow(context.Background(), query, codigo).Scan(
		&a.ID, &a.Nombre, &a.Codigo, &a.Tipo, &a.Unidad, &a.EsVariacion, &a.OrdenVisual,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get atributo: %w", err)
	}
	return &a, nil
}

// List devuelve todos los atributos en su orden visual.
func (r *AtributoRepo) List() ([]*entity.Atributo, error) {
	query := `SELECT id, nombre, codigo, tipo, unidad, es_variacion, orden_visual FROM atributos ORDER BY orden_visual, nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list atributos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Atributo
	for rows.Next() {
		var a entity.Atributo
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Codigo, &a.Tipo, &a.Unidad, &a.EsVariacion, &a.OrdenVisual); err != nil {
			return nil, fmt.Errorf("scan atributo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// SetValorProducto inserta o actualiza el valor del atributo a nivel de producto
// (único por par producto-atributo).
func (r *AtributoRepo) SetValorProducto(valor *entity.ProductoAtributo) error {
	if valor.ID == "" {
		valor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO producto_atributos (id, producto_id, atributo_id, valor_text, valor_num)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (producto_id, atributo_id)
		DO UPDATE SET valor_text = EXCLUDED.valor_text, valor_num = EXCLUDED.valor_num`
	_, err := r.q.Exec(context.Background(), query,
		valor.ID, valor.ProductoID, valor.AtributoID, valor.ValorText, valor.ValorNum,
	)
	if err != nil {
		return fmt.Errorf("set valor producto: %w", err)
	}
	return nil
}

// SetValorVariante inserta o actualiza el valor del atributo a nivel de variante
// (único por par variante-atributo).
func (r *AtributoRepo) SetValorVariante(valor *entity.VarianteAtributo) error {
	if valor.ID == "" {
		valor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO variante_atributos (id, variante_id, atributo_id, valor_text, valor_num)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (variante_id, atributo_id)
		DO UPDATE SET valor_text = EXCLUDED.valor_text, valor_num = EXCLUDED.valor_num`
	_, err := r.q.Exec(context.Background(), query,
		valor.ID, valor.VarianteID, valor.AtributoID, valor.ValorText, valor.ValorNum,
	)
	if err != nil {
		return fmt.Errorf("set valor variante: %w", err)
	}
	return nil
}

// ValoresByVariante devuelve los valores de atributo de una variante.
func (r *AtributoRepo) ValoresByVariante(varianteID string) ([]*entity.VarianteAtributo, error) {
	query := `SELECT id, variante_id, atributo_id, valor_text, valor_num FROM variante_atributos WHERE variante_id = $1`
	rows, err := r.q.Query(context.Background(), query, varianteID)
	if err != nil {
		return nil, fmt.Errorf("valores by variante: %w", err)
	}
	defer rows.Close()
	var list []*entity.VarianteAtributo
	for rows.Next() {
		var v entity.VarianteAtributo
		if err := rows.Scan(&v.ID, &v.VarianteID, &v.AtributoID, &v.ValorText, &v.ValorNum); err != nil {
			return nil, fmt.Errorf("scan valor variante: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

var _ repository.ImagenRepository = (*ImagenRepo)(nil)

// ImagenRepo implementación sobre PostgreSQL.
type ImagenRepo struct {
	q Querier
}

func NewImagenRepository(q Querier) *ImagenRepo {
	return &ImagenRepo{q: q}
}

// Create persiste una imagen de producto o variante.
func (r *ImagenRepo) Create(imagen *entity.Imagen) error {
	if imagen.ID == "" {
		imagen.ID = uuid.New().String()
	}
	query := `
		INSERT INTO imagenes (id, producto_id, variante_id, url, es_principal, orden)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		imagen.ID, imagen.ProductoID, imagen.VarianteID, imagen.URL,
		imagen.EsPrincipal, imagen.Orden,
	)
	if err != nil {
		return fmt.Errorf("create imagen: %w", err)
	}
	return nil
}

// ListByProducto devuelve las imágenes del producto y de sus variantes.
func (r *ImagenRepo) ListByProducto(productoID string) ([]*entity.Imagen, error) {
	query := `
		SELECT i.id, i.producto_id, i.variante_id, i.url, i.es_principal, i.orden
		FROM imagenes i
		LEFT JOIN producto_variantes v ON v.id = i.variante_id
		WHERE i.producto_id = $1 OR v.producto_id = $1
		ORDER BY i.orden, i.id`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list imagenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Imagen
	for rows.Next() {
		var i entity.Imagen
		if err := rows.Scan(&i.ID, &i.ProductoID, &i.VarianteID, &i.URL, &i.EsPrincipal, &i.Orden); err != nil {
			return nil, fmt.Errorf("scan imagen: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
