package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// EnvioRepository puerto de persistencia para couriers, geografía, tarifas y envíos.
type EnvioRepository interface {
	CreateEmpresa(empresa *entity.EmpresaEnvio) error
	ListEmpresas() ([]*entity.EmpresaEnvio, error)

	CreateRegion(region *entity.Region) error
	CreateCiudad(ciudad *entity.Ciudad) error
	ListCiudades(regionID string) ([]*entity.Ciudad, error)

	CreateTarifa(tarifa *entity.TarifaEnvio) error
	// FindTarifa devuelve la tarifa activa más barata para la ciudad cuyo tramo
	// de peso contiene pesoKg (límites nulos = sin tope en ese extremo).
	FindTarifa(ciudadID string, pesoKg decimal.Decimal) (*entity.TarifaEnvio, error)

	CreateEnvio(envio *entity.Envio) error
	GetEnvioByPedido(pedidoID string) (*entity.Envio, error)
	UpdateEnvio(envio *entity.Envio) error
}
