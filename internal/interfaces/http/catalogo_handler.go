package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/catalogo"
	"github.com/dcastillo/comercio-api/internal/application/dto"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// CatalogoHandler maneja categorías, marcas, productos, variantes e imágenes.
type CatalogoHandler struct {
	uc *catalogo.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *catalogo.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// CrearCategoria godoc
// @Summary      Crear categoría
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearCategoriaRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoriaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CatalogoHandler) CrearCategoria(c *fiber.Ctx) error {
	var in dto.CrearCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.CrearCategoria(c.Context(), &entity.Categoria{
		Nombre:        in.Nombre,
		Slug:          in.Slug,
		PadreID:       in.PadreID,
		Descripcion:   in.Descripcion,
		ImagenURLBase: in.ImagenURL,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoriaFromEntity(out))
}

// ListCategorias godoc
// @Summary      Listar categorías
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}  dto.CategoriaResponse
// @Router       /api/categorias [get]
func (h *CatalogoHandler) ListCategorias(c *fiber.Ctx) error {
	categorias, err := h.uc.ListCategorias(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, cat := range categorias {
		out = append(out, dto.CategoriaFromEntity(cat))
	}
	return c.JSON(out)
}

// CrearMarca godoc
// @Summary      Crear marca
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearMarcaRequest  true  "Datos de la marca"
// @Success      201   {object}  dto.MarcaResponse
// @Router       /api/marcas [post]
func (h *CatalogoHandler) CrearMarca(c *fiber.Ctx) error {
	var in dto.CrearMarcaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.CrearMarca(c.Context(), &entity.Marca{Nombre: in.Nombre, ImagenLogo: in.ImagenLogo})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MarcaFromEntity(out))
}

// ListMarcas godoc
// @Summary      Listar marcas
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}  dto.MarcaResponse
// @Router       /api/marcas [get]
func (h *CatalogoHandler) ListMarcas(c *fiber.Ctx) error {
	marcas, err := h.uc.ListMarcas(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.MarcaResponse, 0, len(marcas))
	for _, m := range marcas {
		out = append(out, dto.MarcaFromEntity(m))
	}
	return c.JSON(out)
}

// CrearProducto godoc
// @Summary      Crear producto
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *CatalogoHandler) CrearProducto(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" || in.CategoriaID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y categoria_id son requeridos"})
	}
	out, err := h.uc.CrearProducto(c.Context(), &entity.Producto{
		CategoriaID: in.CategoriaID,
		MarcaID:     in.MarcaID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		SKUBase:     in.SKUBase,
		PrecioBase:  in.PrecioBase,
		PesoKg:      in.PesoKg,
		VolumenM3:   in.VolumenM3,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductoFromEntity(out))
}

// GetProducto godoc
// @Summary      Obtener producto por ID
// @Tags         catalogo
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *CatalogoHandler) GetProducto(c *fiber.Ctx) error {
	producto, err := h.uc.GetProducto(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	if producto == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.ProductoFromEntity(producto))
}

// ListProductos godoc
// @Summary      Listar productos
// @Tags         catalogo
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductoListResponse
// @Router       /api/productos [get]
func (h *CatalogoHandler) ListProductos(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	productos, err := h.uc.ListProductos(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := dto.ProductoListResponse{
		Items: make([]dto.ProductoResponse, 0, len(productos)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range productos {
		out.Items = append(out.Items, dto.ProductoFromEntity(p))
	}
	return c.JSON(out)
}

// CrearVariante godoc
// @Summary      Crear variante vendible
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearVarianteRequest  true  "Datos de la variante"
// @Success      201   {object}  dto.VarianteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/variantes [post]
func (h *CatalogoHandler) CrearVariante(c *fiber.Ctx) error {
	var in dto.CrearVarianteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductoID == "" || in.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto_id y sku son requeridos"})
	}
	out, err := h.uc.CrearVariante(c.Context(), &entity.ProductoVariante{
		ProductoID: in.ProductoID,
		SKU:        in.SKU,
		Precio:     in.Precio,
		PesoKg:     in.PesoKg,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VarianteFromEntity(out))
}

// ListVariantes godoc
// @Summary      Listar variantes de un producto
// @Tags         catalogo
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.VarianteResponse
// @Router       /api/productos/{id}/variantes [get]
func (h *CatalogoHandler) ListVariantes(c *fiber.Ctx) error {
	variantes, err := h.uc.VariantesByProducto(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.VarianteResponse, 0, len(variantes))
	for _, v := range variantes {
		out = append(out, dto.VarianteFromEntity(v))
	}
	return c.JSON(out)
}

// ListImagenes godoc
// @Summary      Listar imágenes de un producto
// @Tags         catalogo
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.ImagenResponse
// @Router       /api/productos/{id}/imagenes [get]
func (h *CatalogoHandler) ListImagenes(c *fiber.Ctx) error {
	imagenes, err := h.uc.ImagenesByProducto(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]dto.ImagenResponse, 0, len(imagenes))
	for _, img := range imagenes {
		out = append(out, dto.ImagenFromEntity(img))
	}
	return c.JSON(out)
}

// SetAtributo godoc
// @Summary      Fijar valor de atributo sobre una variante
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la variante"
// @Param        body  body  dto.SetAtributoRequest  true  "Código y valor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variantes/{id}/atributos [put]
func (h *CatalogoHandler) SetAtributo(c *fiber.Ctx) error {
	var in dto.SetAtributoRequest
	if err := c.BodyParser(&in); err != nil || in.CodigoAtributo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "codigo_atributo es requerido"})
	}
	if err := h.uc.SetAtributoVariante(c.Context(), c.Params("id"), in.CodigoAtributo, in.ValorTexto, in.ValorNum); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AgregarImagen godoc
// @Summary      Agregar imagen a producto o variante
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/imagenes [post]
func (h *CatalogoHandler) AgregarImagen(c *fiber.Ctx) error {
	var in dto.AgregarImagenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.AgregarImagen(c.Context(), &entity.Imagen{
		ProductoID:  in.ProductoID,
		VarianteID:  in.VarianteID,
		URL:         in.URL,
		EsPrincipal: in.EsPrincipal,
		Orden:       in.Orden,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
