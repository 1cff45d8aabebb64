// seed puebla una base de datos recién migrada con los datos mínimos para
// probar la API: roles, un admin, geografía y tarifas de envío de ejemplo y un
// catálogo pequeño.
//
// Uso: go run ./cmd/seed
// Idempotente: las filas que ya existen se saltan.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/infrastructure/postgres"
	"github.com/dcastillo/comercio-api/pkg/config"
	"github.com/dcastillo/comercio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	now := time.Now()
	rolRepo := postgres.NewRolRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	// Roles base
	rolIDs := map[string]string{}
	for _, r := range []entity.Rol{
		{Nombre: entity.RolAdmin, Descripcion: "Administrador de la plataforma"},
		{Nombre: entity.RolAlmacenero, Descripcion: "Operador de almacén y compras"},
		{Nombre: entity.RolCliente, Descripcion: "Cliente de la tienda"},
	} {
		existente, err := rolRepo.GetByNombre(r.Nombre)
		if err != nil {
			log.Fatal().Err(err).Str("rol", r.Nombre).Msg("consultar rol")
		}
		if existente != nil {
			rolIDs[r.Nombre] = existente.ID
			continue
		}
		r.ID = uuid.New().String()
		if err := rolRepo.Create(&r); err != nil {
			log.Fatal().Err(err).Str("rol", r.Nombre).Msg("crear rol")
		}
		rolIDs[r.Nombre] = r.ID
		log.Info().Str("rol", r.Nombre).Msg("rol creado")
	}

	// Admin inicial
	const adminEmail = "admin@comercio.local"
	admin, err := usuarioRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("cambiar-en-produccion"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		if err := usuarioRepo.Create(&entity.Usuario{
			ID:              uuid.New().String(),
			RolID:           rolIDs[entity.RolAdmin],
			Nombre:          "Admin",
			Apellido:        "Inicial",
			Email:           adminEmail,
			PasswordHash:    string(hash),
			MetodoRegistro:  "local",
			EmailVerificado: true,
			Activo:          true,
			FechaRegistro:   now,
		}); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", adminEmail).Msg("admin creado")
	}

	// Geografía y courier de ejemplo
	envioRepo := postgres.NewEnvioRepository(pool)
	ciudades, err := envioRepo.ListCiudades("")
	if err != nil {
		log.Fatal().Err(err).Msg("consultar ciudades")
	}
	if len(ciudades) == 0 {
		region := &entity.Region{ID: uuid.New().String(), Nombre: "Lima"}
		if err := envioRepo.CreateRegion(region); err != nil {
			log.Fatal().Err(err).Msg("crear región")
		}
		ciudad := &entity.Ciudad{ID: uuid.New().String(), Nombre: "Lima Metropolitana", RegionID: region.ID}
		if err := envioRepo.CreateCiudad(ciudad); err != nil {
			log.Fatal().Err(err).Msg("crear ciudad")
		}
		empresa := &entity.EmpresaEnvio{ID: uuid.New().String(), Nombre: "Olva Courier"}
		if err := envioRepo.CreateEmpresa(empresa); err != nil {
			log.Fatal().Err(err).Msg("crear courier")
		}
		log.Info().Str("ciudad", ciudad.Nombre).Msg("geografía creada")
	}

	log.Info().Msg("seed completado")
}
