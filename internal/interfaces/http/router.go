package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/auth"
	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/internal/application/carrito"
	"github.com/dcastillo/comercio-api/internal/application/catalogo"
	"github.com/dcastillo/comercio-api/internal/application/checkout"
	"github.com/dcastillo/comercio-api/internal/application/compras"
	"github.com/dcastillo/comercio-api/internal/application/envios"
	"github.com/dcastillo/comercio-api/internal/application/inventory"
	"github.com/dcastillo/comercio-api/internal/application/jobs"
	"github.com/dcastillo/comercio-api/internal/application/pagos"
	"github.com/dcastillo/comercio-api/internal/application/promo"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CatalogoUC   *catalogo.CatalogoUseCase
	InventarioUC *inventory.InventarioUseCase
	PromoUC      *promo.PromoUseCase
	CarritoUC    *carrito.CarritoUseCase
	CheckoutUC   *checkout.CheckoutUseCase
	ComprasUC    *compras.ComprasUseCase
	EnviosUC     *envios.EnviosUseCase
	PagosUC      *pagos.PagosUseCase
	BillingUC    *billing.BillingUseCase
	JobsUC       *jobs.JobsUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	operador := RequireRol(entity.RolAdmin, entity.RolAlmacenero)
	soloAdmin := RequireRol(entity.RolAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Registrar)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/verify-email", authHandler.VerificarEmail)

	// Catálogo: las lecturas son públicas, las escrituras requieren operador.
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	api.Get("/categorias", catalogoHandler.ListCategorias)
	api.Get("/marcas", catalogoHandler.ListMarcas)
	api.Get("/productos", catalogoHandler.ListProductos)
	api.Get("/productos/:id", catalogoHandler.GetProducto)
	api.Get("/productos/:id/variantes", catalogoHandler.ListVariantes)
	api.Get("/productos/:id/imagenes", catalogoHandler.ListImagenes)

	// Cotización pública para mostrar el costo antes del checkout.
	envioHandler := NewEnvioHandler(deps.EnviosUC)
	api.Post("/envios/cotizar", envioHandler.Cotizar)
	api.Get("/envios/ciudades", envioHandler.ListCiudades)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (escritura, operador)
	protected.Post("/categorias", operador, catalogoHandler.CrearCategoria)
	protected.Post("/marcas", operador, catalogoHandler.CrearMarca)
	protected.Post("/productos", operador, catalogoHandler.CrearProducto)
	protected.Post("/variantes", operador, catalogoHandler.CrearVariante)
	protected.Put("/variantes/:id/atributos", operador, catalogoHandler.SetAtributo)
	protected.Post("/imagenes", operador, catalogoHandler.AgregarImagen)

	// Inventario (operador)
	invGroup := protected.Group("/inventario", operador)
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	invGroup.Post("/lotes", inventarioHandler.Recibir)
	invGroup.Post("/salidas", inventarioHandler.Descontar)
	invGroup.Post("/ajustes", inventarioHandler.Ajustar)
	invGroup.Post("/reservas", inventarioHandler.Reservar)
	invGroup.Post("/liberaciones", inventarioHandler.Liberar)
	invGroup.Get("/variantes/:id/saldo", inventarioHandler.Saldo)
	invGroup.Get("/variantes/:id/movimientos", inventarioHandler.Movimientos)

	// Promociones (solo admin)
	promociones := protected.Group("/promociones", soloAdmin)
	promoHandler := NewPromoHandler(deps.PromoUC)
	promociones.Post("/", promoHandler.Crear)
	promociones.Get("/:id", promoHandler.GetByID)
	promociones.Delete("/:id", promoHandler.Desactivar)

	// Carrito (cualquier usuario autenticado)
	carritoGroup := protected.Group("/carrito")
	carritoHandler := NewCarritoHandler(deps.CarritoUC)
	carritoGroup.Get("/", carritoHandler.Obtener)
	carritoGroup.Post("/:id/items", carritoHandler.AgregarItem)
	carritoGroup.Delete("/:id/items/:itemId", carritoHandler.QuitarItem)
	carritoGroup.Put("/:id/cupon", carritoHandler.AplicarCupon)

	// Pedidos
	pedidos := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.CheckoutUC)
	comprobanteHandler := NewComprobanteHandler(deps.BillingUC)
	pedidos.Post("/", pedidoHandler.Checkout)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Delete("/:id", pedidoHandler.Cancelar)
	pedidos.Get("/:id/envio", envioHandler.GetByPedido)
	pedidos.Post("/:id/despacho", operador, envioHandler.Despachar)
	pedidos.Post("/:id/entrega", operador, envioHandler.MarcarEntregado)
	pedidos.Get("/:id/comprobante", comprobanteHandler.GetByPedido)

	// Pagos: el cliente registra, el operador verifica.
	pagosGroup := protected.Group("/pagos")
	pagoHandler := NewPagoHandler(deps.PagosUC)
	pagosGroup.Post("/", pagoHandler.Registrar)
	pagosGroup.Post("/:id/confirmacion", operador, pagoHandler.Confirmar)
	pagosGroup.Post("/:id/rechazo", operador, pagoHandler.Rechazar)

	// Comprobantes (operador)
	comprobantes := protected.Group("/comprobantes", operador)
	comprobantes.Post("/", comprobanteHandler.Emitir)
	comprobantes.Delete("/:id", comprobanteHandler.Anular)

	// Compras a proveedores (operador)
	compraHandler := NewCompraHandler(deps.ComprasUC)
	proveedores := protected.Group("/proveedores", operador)
	proveedores.Post("/", compraHandler.CrearProveedor)
	proveedores.Get("/", compraHandler.ListProveedores)
	comprasGroup := protected.Group("/compras", operador)
	comprasGroup.Post("/", compraHandler.Crear)
	comprasGroup.Get("/", compraHandler.List)
	comprasGroup.Get("/:id", compraHandler.GetByID)
	comprasGroup.Post("/:id/recepcion", compraHandler.Recibir)
	comprasGroup.Delete("/:id", compraHandler.Cancelar)

	// Envíos: geografía y tarifas (solo admin)
	enviosGroup := protected.Group("/envios", soloAdmin)
	enviosGroup.Post("/empresas", envioHandler.CrearEmpresa)
	enviosGroup.Get("/empresas", envioHandler.ListEmpresas)
	enviosGroup.Post("/regiones", envioHandler.CrearRegion)
	enviosGroup.Post("/ciudades", envioHandler.CrearCiudad)
	enviosGroup.Post("/tarifas", envioHandler.CrearTarifa)

	// Import/export (operador)
	jobsGroup := protected.Group("/jobs", operador)
	jobHandler := NewJobHandler(deps.JobsUC)
	jobsGroup.Post("/imports", jobHandler.SolicitarImport)
	jobsGroup.Get("/imports", jobHandler.ListImports)
	jobsGroup.Post("/imports/:id/resultado", jobHandler.ResolverImport)
	jobsGroup.Post("/exports", jobHandler.SolicitarExport)
	jobsGroup.Get("/exports", jobHandler.ListExports)
	jobsGroup.Post("/exports/:id/resultado", jobHandler.ResolverExport)
}
