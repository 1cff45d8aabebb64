package compras

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/application/inventory"
	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

// Receptor entrada de mercadería al libro de inventario.
type Receptor interface {
	Recibir(ctx context.Context, in inventory.RecibirInput, now time.Time) (*entity.Lote, error)
}

// ComprasUseCase órdenes de compra a proveedores y su recepción: al marcar una
// compra como recibida cada línea genera su lote y su asiento de entrada.
type ComprasUseCase struct {
	proveedorRepo repository.ProveedorRepository
	compraRepo    repository.CompraRepository
	receptor      Receptor
}

func NewComprasUseCase(proveedorRepo repository.ProveedorRepository, compraRepo repository.CompraRepository, receptor Receptor) *ComprasUseCase {
	return &ComprasUseCase{proveedorRepo: proveedorRepo, compraRepo: compraRepo, receptor: receptor}
}

// CrearProveedor valida el RUC y persiste el proveedor.
func (uc *ComprasUseCase) CrearProveedor(ctx context.Context, p *entity.Proveedor) (*entity.Proveedor, error) {
	if p.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if p.RUC != "" && sunat.ValidateRUC(p.RUC) != nil {
		return nil, fmt.Errorf("RUC %s: %w", p.RUC, domain.ErrEntradaInvalida)
	}
	p.ID = uuid.New().String()
	if err := uc.proveedorRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ItemInput línea de una compra nueva. CantidadUnidades es lo que ingresará al
// lote: presentaciones × unidades por presentación más unidades sueltas.
type ItemInput struct {
	ProductoID                 string
	VarianteID                 *string
	Presentacion               string
	UnidadesPorPresentacion    int
	CantidadPresentaciones     int
	UnidadesSueltas            int
	PrecioUnitarioPresentacion decimal.Decimal
}

// CrearInput compra nueva con sus líneas.
type CrearInput struct {
	ProveedorID string
	FechaCompra time.Time
	Nota        string
	Items       []ItemInput
}

// Crear registra la compra en estado pendiente con los totales calculados.
func (uc *ComprasUseCase) Crear(ctx context.Context, in CrearInput) (*entity.Compra, error) {
	if in.ProveedorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	proveedor, err := uc.proveedorRepo.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}

	compra := &entity.Compra{
		ID:          uuid.New().String(),
		ProveedorID: in.ProveedorID,
		Codigo:      nuevoCodigoCompra(),
		FechaCompra: in.FechaCompra,
		Estado:      entity.CompraPendiente,
		Nota:        in.Nota,
	}

	var items []*entity.CompraItem
	subtotal := decimal.Zero
	for _, it := range in.Items {
		if it.ProductoID == "" {
			return nil, domain.ErrEntradaInvalida
		}
		unidadesPorPresentacion := it.UnidadesPorPresentacion
		if unidadesPorPresentacion <= 0 {
			unidadesPorPresentacion = 1
		}
		cantidadUnidades := it.CantidadPresentaciones*unidadesPorPresentacion + it.UnidadesSueltas
		if cantidadUnidades <= 0 {
			return nil, domain.ErrEntradaInvalida
		}
		precioUnidad := decimal.Zero
		if !it.PrecioUnitarioPresentacion.IsZero() {
			precioUnidad = it.PrecioUnitarioPresentacion.DivRound(decimal.NewFromInt(int64(unidadesPorPresentacion)), 4)
		}
		lineaSubtotal := precioUnidad.Mul(decimal.NewFromInt(int64(cantidadUnidades))).Round(2)
		items = append(items, &entity.CompraItem{
			ID:                         uuid.New().String(),
			CompraID:                   compra.ID,
			ProductoID:                 it.ProductoID,
			VarianteID:                 it.VarianteID,
			Presentacion:               it.Presentacion,
			UnidadesPorPresentacion:    unidadesPorPresentacion,
			CantidadPresentaciones:     it.CantidadPresentaciones,
			CantidadUnidades:           cantidadUnidades,
			PrecioUnitarioPresentacion: it.PrecioUnitarioPresentacion,
			PrecioUnitarioUnidad:       precioUnidad,
			Subtotal:                   lineaSubtotal,
		})
		subtotal = subtotal.Add(lineaSubtotal)
	}

	// Los precios de compra ya incluyen IGV; se desglosa para el registro.
	compra.Total = subtotal
	compra.Impuestos = subtotal.Mul(decimal.NewFromInt(18)).Div(decimal.NewFromInt(118)).Round(2)
	compra.Subtotal = compra.Total.Sub(compra.Impuestos)

	if err := uc.compraRepo.Create(compra, items); err != nil {
		return nil, err
	}
	return compra, nil
}

// MarcarRecibida ingresa la mercadería: un lote y un asiento de entrada por
// cada línea con variante. Las líneas sin variante no llevan control de stock.
// Una compra ya recibida o cancelada no puede recibirse de nuevo.
func (uc *ComprasUseCase) MarcarRecibida(ctx context.Context, compraID, usuarioID string, fechaVencimiento map[string]*time.Time, now time.Time) error {
	compra, err := uc.compraRepo.GetByID(compraID)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNoEncontrado
	}
	if compra.Estado != entity.CompraPendiente {
		return fmt.Errorf("compra %s en estado %s: %w", compra.Codigo, compra.Estado, domain.ErrConflicto)
	}

	items, err := uc.compraRepo.ItemsByCompra(compraID)
	if err != nil {
		return err
	}
	proveedorID := compra.ProveedorID
	for _, item := range items {
		if item.VarianteID == nil {
			continue
		}
		var vence *time.Time
		if fechaVencimiento != nil {
			vence = fechaVencimiento[item.ID]
		}
		_, err := uc.receptor.Recibir(ctx, inventory.RecibirInput{
			VarianteID:              *item.VarianteID,
			ProductoID:              item.ProductoID,
			CompraID:                &compra.ID,
			ProveedorID:             &proveedorID,
			CodigoLote:              fmt.Sprintf("%s-%s", compra.Codigo, item.ID[:8]),
			Presentacion:            item.Presentacion,
			UnidadesPorPresentacion: item.UnidadesPorPresentacion,
			Cantidad:                item.CantidadUnidades,
			CostoTotal:              item.Subtotal,
			FechaVencimiento:        vence,
			UsuarioID:               usuarioID,
		}, now)
		if err != nil {
			return err
		}
	}
	return uc.compraRepo.UpdateEstado(compraID, entity.CompraRecibida)
}

// Cancelar anula una compra pendiente.
func (uc *ComprasUseCase) Cancelar(ctx context.Context, compraID string) error {
	compra, err := uc.compraRepo.GetByID(compraID)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNoEncontrado
	}
	if compra.Estado != entity.CompraPendiente {
		return domain.ErrConflicto
	}
	return uc.compraRepo.UpdateEstado(compraID, entity.CompraCancelada)
}

// ListProveedores devuelve todos los proveedores.
func (uc *ComprasUseCase) ListProveedores(ctx context.Context) ([]*entity.Proveedor, error) {
	return uc.proveedorRepo.List()
}

// GetCompra devuelve una compra con sus líneas (nil si no existe).
func (uc *ComprasUseCase) GetCompra(ctx context.Context, compraID string) (*entity.Compra, []*entity.CompraItem, error) {
	compra, err := uc.compraRepo.GetByID(compraID)
	if err != nil {
		return nil, nil, err
	}
	if compra == nil {
		return nil, nil, nil
	}
	items, err := uc.compraRepo.ItemsByCompra(compraID)
	if err != nil {
		return nil, nil, err
	}
	return compra, items, nil
}

// ListCompras devuelve compras paginadas.
func (uc *ComprasUseCase) ListCompras(ctx context.Context, limit, offset int) ([]*entity.Compra, error) {
	return uc.compraRepo.List(limit, offset)
}

func nuevoCodigoCompra() string {
	return "OC-" + uuid.New().String()[:8]
}
