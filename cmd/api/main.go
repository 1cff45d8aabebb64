package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

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
	infrapdf "github.com/dcastillo/comercio-api/internal/infrastructure/pdf"
	"github.com/dcastillo/comercio-api/internal/infrastructure/postgres"
	"github.com/dcastillo/comercio-api/internal/infrastructure/storage"
	infrasunat "github.com/dcastillo/comercio-api/internal/infrastructure/sunat"
	httpRouter "github.com/dcastillo/comercio-api/internal/interfaces/http"
	"github.com/dcastillo/comercio-api/pkg/config"
	"github.com/dcastillo/comercio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	marcaRepo := postgres.NewMarcaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	varianteRepo := postgres.NewVarianteRepository(pool)
	atributoRepo := postgres.NewAtributoRepository(pool)
	imagenRepo := postgres.NewImagenRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	promocionRepo := postgres.NewPromocionRepository(pool)
	carritoRepo := postgres.NewCarritoRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	envioRepo := postgres.NewEnvioRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	logRepo := postgres.NewLogRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	checkoutTxRunner := postgres.NewCheckoutTxRunner(pool)
	emisionTxRunner := postgres.NewEmisionTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, rolRepo, tokenRepo, cfg.JWT.Secret, cfg.JWT.Issuer)
	catalogoUC := catalogo.NewCatalogoUseCase(categoriaRepo, marcaRepo, productoRepo, varianteRepo, atributoRepo, imagenRepo)
	inventarioUC := inventory.NewInventarioUseCase(txRunner, movRepo, varianteRepo)
	promoUC := promo.NewPromoUseCase(promocionRepo)
	carritoUC := carrito.NewCarritoUseCase(carritoRepo, varianteRepo)
	checkoutUC := checkout.NewCheckoutUseCase(checkoutTxRunner, carritoRepo, varianteRepo, envioRepo, pedidoRepo, promoUC)
	comprasUC := compras.NewComprasUseCase(proveedorRepo, compraRepo, inventarioUC)
	enviosUC := envios.NewEnviosUseCase(envioRepo, pedidoRepo)
	pagosUC := pagos.NewPagosUseCase(pagoRepo, pedidoRepo, logRepo)
	jobsUC := jobs.NewJobsUseCase(jobRepo)

	// Emisión SUNAT: XML UBL firmado + PDF, guardados en el almacén local.
	generadorXML, err := infrasunat.NewGeneradorUBL(cfg.SUNAT)
	if err != nil {
		log.Fatal().Err(err).Msg("generador UBL")
	}
	almacen, err := storage.NewLocalAlmacen(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de comprobantes")
	}
	billingUC := billing.NewBillingUseCase(
		emisionTxRunner, pedidoRepo, usuarioRepo, varianteRepo, comprobanteRepo,
		generadorXML, infrapdf.NewMarotoPDFGenerator(), almacen, cfg.SUNAT,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// XML y PDF de comprobantes servidos como estáticos.
	app.Static(cfg.Storage.BaseURL, almacen.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogoUC:   catalogoUC,
		InventarioUC: inventarioUC,
		PromoUC:      promoUC,
		CarritoUC:    carritoUC,
		CheckoutUC:   checkoutUC,
		ComprasUC:    comprasUC,
		EnviosUC:     enviosUC,
		PagosUC:      pagosUC,
		BillingUC:    billingUC,
		JobsUC:       jobsUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
