package pagos

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// PagosUseCase registro y verificación manual de pagos. No hay pasarela: el
// cliente sube su constancia (yape, plin, transferencia) y un operador la valida.
type PagosUseCase struct {
	pagoRepo   repository.PagoRepository
	pedidoRepo repository.PedidoRepository
	logRepo    repository.LogRepository
}

func NewPagosUseCase(pagoRepo repository.PagoRepository, pedidoRepo repository.PedidoRepository, logRepo repository.LogRepository) *PagosUseCase {
	return &PagosUseCase{pagoRepo: pagoRepo, pedidoRepo: pedidoRepo, logRepo: logRepo}
}

// RegistrarInput constancia de pago declarada por el cliente.
type RegistrarInput struct {
	PedidoID          string
	Metodo            string
	ComprobanteURL    string
	ReferenciaExterna string
}

// Registrar crea el pago en estado pendiente por el total del pedido.
func (uc *PagosUseCase) Registrar(ctx context.Context, in RegistrarInput, now time.Time) (*entity.Pago, error) {
	if in.PedidoID == "" || in.Metodo == "" {
		return nil, domain.ErrEntradaInvalida
	}
	pedido, err := uc.pedidoRepo.GetByID(in.PedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	if pedido.Estado != entity.PedidoPendiente {
		return nil, domain.ErrConflicto
	}

	pago := &entity.Pago{
		ID:                uuid.New().String(),
		PedidoID:          in.PedidoID,
		Metodo:            in.Metodo,
		Monto:             pedido.Total,
		FechaPago:         now,
		Estado:            entity.PagoPendiente,
		ComprobanteURL:    in.ComprobanteURL,
		ReferenciaExterna: in.ReferenciaExterna,
	}
	if err := uc.pagoRepo.Create(pago); err != nil {
		return nil, err
	}
	return pago, nil
}

// Confirmar valida el pago y pasa el pedido a pagado. Queda registrado quién
// verificó y cuándo.
func (uc *PagosUseCase) Confirmar(ctx context.Context, pagoID, verificadorID string, now time.Time) error {
	return uc.resolver(ctx, pagoID, verificadorID, entity.PagoConfirmado, now)
}

// Rechazar marca el pago como rechazado; el pedido sigue pendiente y el
// cliente puede registrar otro intento.
func (uc *PagosUseCase) Rechazar(ctx context.Context, pagoID, verificadorID string, now time.Time) error {
	return uc.resolver(ctx, pagoID, verificadorID, entity.PagoRechazado, now)
}

func (uc *PagosUseCase) resolver(ctx context.Context, pagoID, verificadorID, estado string, now time.Time) error {
	pago, err := uc.pagoRepo.GetByID(pagoID)
	if err != nil {
		return err
	}
	if pago == nil {
		return domain.ErrNoEncontrado
	}
	if pago.Estado != entity.PagoPendiente {
		return domain.ErrConflicto
	}

	pago.Estado = estado
	pago.UsuarioVerificadorID = &verificadorID
	pago.FechaValidacion = &now
	if err := uc.pagoRepo.Update(pago); err != nil {
		return err
	}

	if estado == entity.PagoConfirmado {
		if err := uc.pedidoRepo.UpdateEstado(pago.PedidoID, entity.PedidoPagado); err != nil {
			return err
		}
	}

	return uc.logRepo.Create(&entity.LogAccion{
		ID:        uuid.New().String(),
		UsuarioID: &verificadorID,
		Accion:    "pago_" + estado,
		Detalle:   "pago " + pagoID + " del pedido " + pago.PedidoID,
		Fecha:     now,
	})
}
