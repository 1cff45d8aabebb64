package repository

import (
	"time"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// PromocionRepository puerto de persistencia para promociones y sus objetivos.
type PromocionRepository interface {
	Create(promocion *entity.Promocion) error
	GetByID(id string) (*entity.Promocion, error)
	GetByCodigo(codigo string) (*entity.Promocion, error)
	// ListVigentes devuelve las promociones activas cuya ventana de vigencia
	// contiene a now (fecha_fin nula = sin expiración).
	ListVigentes(now time.Time) ([]*entity.Promocion, error)
	Update(promocion *entity.Promocion) error
	Delete(id string) error

	CreateObjetivo(objetivo *entity.PromocionProducto) error
	ObjetivosByPromocion(promocionID string) ([]*entity.PromocionProducto, error)
	// CountUsos cuenta cuántos pedidos registran la promoción en
	// promociones_aplicadas o pedido_items (contador de max_usos).
	CountUsos(promocionID string) (int, error)
}
