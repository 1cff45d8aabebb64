package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/application/inventory"
	"github.com/dcastillo/comercio-api/internal/application/promo"
	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// IGV incluido en el precio: base imponible = total × 100/118.
var (
	igvFactorNum = decimal.NewFromInt(18)
	igvFactorDen = decimal.NewFromInt(118)
)

// Evaluador motor de promociones visto desde el checkout.
type Evaluador interface {
	Evaluar(ctx context.Context, lineas []promo.Linea, codigoCupon string, now time.Time) (promo.Resultado, error)
}

// CheckoutUseCase convierte un carrito en un pedido: reevalúa promociones,
// calcula envío e impuestos, descuenta stock lote a lote y congela los
// snapshots de descuento, todo dentro de una sola transacción.
type CheckoutUseCase struct {
	txRunner     TxRunner
	carritoRepo  repository.CarritoRepository
	varianteRepo repository.VarianteRepository
	envioRepo    repository.EnvioRepository
	pedidoRepo   repository.PedidoRepository
	evaluador    Evaluador
}

func NewCheckoutUseCase(
	txRunner TxRunner,
	carritoRepo repository.CarritoRepository,
	varianteRepo repository.VarianteRepository,
	envioRepo repository.EnvioRepository,
	pedidoRepo repository.PedidoRepository,
	evaluador Evaluador,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:     txRunner,
		carritoRepo:  carritoRepo,
		varianteRepo: varianteRepo,
		envioRepo:    envioRepo,
		pedidoRepo:   pedidoRepo,
		evaluador:    evaluador,
	}
}

// FinalizarInput datos para convertir el carrito en pedido. CiudadID vacío
// significa retiro en tienda (sin costo de envío).
type FinalizarInput struct {
	UsuarioID      string
	CarritoID      string
	MetodoPago     string
	DireccionEnvio string
	CiudadID       string
	Nota           string
}

// FinalizarResult pedido creado con sus líneas. CuponRechazado informa que el
// cupón del carrito no casó con ninguna promoción vigente; el pedido se crea
// igual, sin ese descuento.
type FinalizarResult struct {
	Pedido         *entity.Pedido
	Items          []*entity.PedidoItem
	CuponRechazado bool
}

// Finalizar crea el pedido a partir del carrito activo. Los descuentos se
// reevalúan contra las promociones vigentes en now (lo persistido en el
// carrito es solo informativo). Si alguna línea no tiene stock suficiente
// la transacción completa se revierte: ni pedido, ni asientos, ni lotes tocados.
func (uc *CheckoutUseCase) Finalizar(ctx context.Context, in FinalizarInput, now time.Time) (*FinalizarResult, error) {
	if in.UsuarioID == "" || in.CarritoID == "" || in.MetodoPago == "" {
		return nil, domain.ErrEntradaInvalida
	}

	carrito, err := uc.carritoRepo.GetByID(in.CarritoID)
	if err != nil {
		return nil, err
	}
	if carrito == nil {
		return nil, domain.ErrNoEncontrado
	}
	if !carrito.Activo {
		return nil, domain.ErrPedidoNoEditable
	}
	items, err := uc.carritoRepo.ItemsByCarrito(carrito.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	lineas := make([]promo.Linea, 0, len(items))
	pesoTotal := decimal.Zero
	for _, item := range items {
		if item.Cantidad <= 0 {
			return nil, domain.ErrEntradaInvalida
		}
		variante, err := uc.varianteRepo.GetByID(item.VarianteID)
		if err != nil {
			return nil, err
		}
		if variante == nil || !variante.Activo {
			return nil, domain.ErrNoEncontrado
		}
		lineas = append(lineas, promo.Linea{
			VarianteID:     variante.ID,
			ProductoID:     variante.ProductoID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitarioSnapshot,
		})
		pesoTotal = pesoTotal.Add(variante.PesoKg.Mul(decimal.NewFromInt(int64(item.Cantidad))))
	}

	resultado, err := uc.evaluador.Evaluar(ctx, lineas, carrito.CuponCodigo, now)
	if err != nil {
		return nil, err
	}

	costoEnvio := decimal.Zero
	if in.CiudadID != "" {
		tarifa, err := uc.envioRepo.FindTarifa(in.CiudadID, pesoTotal)
		if err != nil {
			return nil, err
		}
		if tarifa == nil {
			return nil, fmt.Errorf("sin tarifa de envío para la ciudad %s: %w", in.CiudadID, domain.ErrNoEncontrado)
		}
		costoEnvio = tarifa.Costo
	}

	subtotal := decimal.Zero
	for _, l := range lineas {
		subtotal = subtotal.Add(l.Subtotal())
	}
	descuento := resultado.TotalDescuento()
	total := subtotal.Sub(descuento).Add(costoEnvio)
	if total.IsNegative() {
		total = decimal.Zero
	}
	// Precios con IGV incluido: el impuesto se desglosa del total.
	impuestos := total.Mul(igvFactorNum).Div(igvFactorDen).Round(2)

	pedido := &entity.Pedido{
		ID:             uuid.New().String(),
		UsuarioID:      in.UsuarioID,
		Codigo:         nuevoCodigoPedido(),
		FechaPedido:    now,
		Estado:         entity.PedidoPendiente,
		Subtotal:       subtotal,
		Descuento:      descuento,
		Impuestos:      impuestos,
		CostoEnvio:     costoEnvio,
		Total:          total,
		MetodoPago:     in.MetodoPago,
		DireccionEnvio: in.DireccionEnvio,
		Nota:           in.Nota,
	}

	var pedidoItems []*entity.PedidoItem
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Pedidos.Create(pedido); err != nil {
			return err
		}

		for i, item := range items {
			movs, err := inventory.DescontarEnTx(
				r.Lotes, r.Movimientos, r.Variantes,
				item.VarianteID, item.Cantidad,
				"venta "+pedido.Codigo, in.UsuarioID, now,
			)
			if err != nil {
				return err
			}

			linea := lineas[i]
			descuentoItem := decimal.Zero
			var promocionID *string
			if d := resultado.PorItem[i]; d != nil {
				descuentoItem = d.Monto
				id := d.PromocionID
				promocionID = &id
			}
			pedidoItem := &entity.PedidoItem{
				ID:             uuid.New().String(),
				PedidoID:       pedido.ID,
				VarianteID:     item.VarianteID,
				LoteOrigenID:   movs[0].LoteID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: linea.PrecioUnitario,
				Subtotal:       linea.Subtotal(),
				DescuentoItem:  descuentoItem,
				PromocionID:    promocionID,
				TotalNeto:      linea.Subtotal().Sub(descuentoItem),
			}
			if err := r.Pedidos.CreateItem(pedidoItem); err != nil {
				return err
			}
			pedidoItems = append(pedidoItems, pedidoItem)
		}

		// Snapshot de auditoría: nombre y monto quedan congelados aunque la
		// promoción se edite o borre después.
		for _, c := range resultado.Contribuciones {
			id := c.PromocionID
			if err := r.Pedidos.CreatePromocionAplicada(&entity.PromocionAplicada{
				ID:                     uuid.New().String(),
				PedidoID:               pedido.ID,
				PromocionID:            &id,
				NombreSnapshot:         c.NombrePromocion,
				ValorDescuentoAplicado: c.Monto,
			}); err != nil {
				return err
			}
		}

		carrito.Activo = false
		carrito.FechaActualizacion = &now
		if err := r.Carritos.Update(carrito); err != nil {
			return err
		}

		envio := &entity.Envio{
			ID:          uuid.New().String(),
			PedidoID:    pedido.ID,
			Direccion:   in.DireccionEnvio,
			CostoEnvio:  costoEnvio,
			EstadoEnvio: entity.EnvioPendiente,
		}
		if in.CiudadID != "" {
			ciudadID := in.CiudadID
			envio.CiudadID = &ciudadID
		}
		if err := r.Envios.CreateEnvio(envio); err != nil {
			return err
		}

		usuarioID := in.UsuarioID
		return r.Logs.Create(&entity.LogAccion{
			ID:        uuid.New().String(),
			UsuarioID: &usuarioID,
			Accion:    "pedido_creado",
			Detalle:   fmt.Sprintf("pedido %s, total %s", pedido.Codigo, pedido.Total.StringFixed(2)),
			Fecha:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &FinalizarResult{
		Pedido:         pedido,
		Items:          pedidoItems,
		CuponRechazado: resultado.CuponRechazado,
	}, nil
}

// Cancelar marca el pedido como cancelado. La reposición de stock es del flujo
// de devoluciones, que conoce los lotes de origen de cada línea.
func (uc *CheckoutUseCase) Cancelar(ctx context.Context, pedidoID string) error {
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return err
	}
	if pedido == nil {
		return domain.ErrNoEncontrado
	}
	if pedido.EsTerminal() {
		return domain.ErrPedidoNoEditable
	}
	return uc.pedidoRepo.UpdateEstado(pedidoID, entity.PedidoCancelado)
}

// GetPedido devuelve un pedido con sus líneas (nil si no existe).
func (uc *CheckoutUseCase) GetPedido(ctx context.Context, pedidoID string) (*entity.Pedido, []*entity.PedidoItem, error) {
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, nil, err
	}
	if pedido == nil {
		return nil, nil, nil
	}
	items, err := uc.pedidoRepo.ItemsByPedido(pedidoID)
	if err != nil {
		return nil, nil, err
	}
	return pedido, items, nil
}

// ListPedidos devuelve pedidos paginados; usuarioID vacío lista todos.
func (uc *CheckoutUseCase) ListPedidos(ctx context.Context, usuarioID string, limit, offset int) ([]*entity.Pedido, error) {
	return uc.pedidoRepo.List(usuarioID, limit, offset)
}

func nuevoCodigoPedido() string {
	return "PED-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}
