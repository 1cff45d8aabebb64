package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// ComprobanteRepository puerto de persistencia para comprobantes de pago.
type ComprobanteRepository interface {
	Create(comprobante *entity.Comprobante) error
	GetByID(id string) (*entity.Comprobante, error)
	GetByPedido(pedidoID string) (*entity.Comprobante, error)
	// NextCorrelativo devuelve el siguiente correlativo de la serie. Debe
	// invocarse dentro de la transacción de emisión para evitar duplicados.
	NextCorrelativo(serie string) (int64, error)
	UpdateEstado(id, estado string) error
}
