package carrito

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// CarritoUseCase carritos de compra. Al agregar un ítem se congela el precio
// unitario vigente de la variante; el stock no se toca hasta finalizar el pedido.
type CarritoUseCase struct {
	carritoRepo  repository.CarritoRepository
	varianteRepo repository.VarianteRepository
}

func NewCarritoUseCase(carritoRepo repository.CarritoRepository, varianteRepo repository.VarianteRepository) *CarritoUseCase {
	return &CarritoUseCase{carritoRepo: carritoRepo, varianteRepo: varianteRepo}
}

// ObtenerOCrear devuelve el carrito activo del usuario, creándolo si no existe.
func (uc *CarritoUseCase) ObtenerOCrear(ctx context.Context, usuarioID, sessionID string, now time.Time) (*entity.Carrito, error) {
	if usuarioID != "" {
		carrito, err := uc.carritoRepo.GetActivoByUsuario(usuarioID)
		if err != nil {
			return nil, err
		}
		if carrito != nil {
			return carrito, nil
		}
	}
	carrito := &entity.Carrito{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		FechaCreacion: now,
		Activo:        true,
	}
	if usuarioID != "" {
		carrito.UsuarioID = &usuarioID
	}
	if err := uc.carritoRepo.Create(carrito); err != nil {
		return nil, err
	}
	return carrito, nil
}

// Items devuelve las líneas del carrito.
func (uc *CarritoUseCase) Items(ctx context.Context, carritoID string) ([]*entity.CarritoItem, error) {
	return uc.carritoRepo.ItemsByCarrito(carritoID)
}

// AgregarItem suma la variante al carrito con su precio vigente congelado. Si
// la variante ya está en el carrito, acumula cantidades sobre la línea existente.
func (uc *CarritoUseCase) AgregarItem(ctx context.Context, carritoID, varianteID string, cantidad int, now time.Time) (*entity.CarritoItem, error) {
	if cantidad <= 0 {
		return nil, domain.ErrEntradaInvalida
	}
	carrito, err := uc.carritoRepo.GetByID(carritoID)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, domain.ErrNoEncontrado
	}
	if !carrito.Activo {
		return nil, domain.ErrPedidoNoEditable
	}
	variante, err := uc.varianteRepo.GetByID(varianteID)
	if err != nil {
		return nil, err
	}
	if variante == nil || !variante.Activo {
		return nil, domain.ErrNoEncontrado
	}

	items, err := uc.carritoRepo.ItemsByCarrito(carritoID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.VarianteID == varianteID {
			it.Cantidad += cantidad
			if err := uc.carritoRepo.UpdateItem(it); err != nil {
				return nil, err
			}
			return it, uc.tocar(carrito, now)
		}
	}

	item := &entity.CarritoItem{
		ID:                     uuid.New().String(),
		CarritoID:              carritoID,
		VarianteID:             varianteID,
		Cantidad:               cantidad,
		PrecioUnitarioSnapshot: variante.Precio,
	}
	if err := uc.carritoRepo.AddItem(item); err != nil {
		return nil, err
	}
	return item, uc.tocar(carrito, now)
}

// QuitarItem elimina una línea del carrito.
func (uc *CarritoUseCase) QuitarItem(ctx context.Context, carritoID, itemID string, now time.Time) error {
	carrito, err := uc.carritoRepo.GetByID(carritoID)
	if err != nil {
		return err
	}
	if carrito == nil {
		return domain.ErrNoEncontrado
	}
	if !carrito.Activo {
		return domain.ErrPedidoNoEditable
	}
	if err := uc.carritoRepo.RemoveItem(itemID); err != nil {
		return err
	}
	return uc.tocar(carrito, now)
}

// AplicarCupon guarda el código en el carrito. La validez real se decide al
// finalizar: aquí solo se persiste para que la UI lo muestre.
func (uc *CarritoUseCase) AplicarCupon(ctx context.Context, carritoID, codigo string, now time.Time) error {
	carrito, err := uc.carritoRepo.GetByID(carritoID)
	if err != nil {
		return err
	}
	if carrito == nil {
		return domain.ErrNoEncontrado
	}
	if !carrito.Activo {
		return domain.ErrPedidoNoEditable
	}
	carrito.CuponCodigo = codigo
	return uc.tocar(carrito, now)
}

func (uc *CarritoUseCase) tocar(carrito *entity.Carrito, now time.Time) error {
	carrito.FechaActualizacion = &now
	return uc.carritoRepo.Update(carrito)
}
