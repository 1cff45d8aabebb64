package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	domaininv "github.com/dcastillo/comercio-api/internal/domain/inventory"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// InventarioUseCase implementa el libro de inventario: entradas por lote,
// salidas con política FEFO/FIFO, ajustes y reservas lógicas. Cada operación
// corre dentro de una transacción con bloqueo de fila sobre la variante
// (SELECT FOR UPDATE), de modo que dos descuentos concurrentes contra el mismo
// pool no puedan ambos observar stock suficiente y sobrevender.
//
// now se recibe como parámetro en todas las operaciones para mantener el motor
// determinista y testeable.
type InventarioUseCase struct {
	txRunner     TxRunner
	movRepo      repository.MovimientoRepository // lecturas fuera de transacción
	varianteRepo repository.VarianteRepository
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(txRunner TxRunner, movRepo repository.MovimientoRepository, varianteRepo repository.VarianteRepository) *InventarioUseCase {
	return &InventarioUseCase{txRunner: txRunner, movRepo: movRepo, varianteRepo: varianteRepo}
}

// RecibirInput entrada para registrar un lote nuevo (compra recibida o ingreso directo).
type RecibirInput struct {
	VarianteID              string
	ProductoID              string
	CompraID                *string
	ProveedorID             *string
	CodigoLote              string
	Presentacion            string
	UnidadesPorPresentacion int
	Cantidad                int // cantidad_inicial del lote
	CostoTotal              decimal.Decimal
	FechaVencimiento        *time.Time
	AlmacenID               *int
	UsuarioID               string
}

// Recibir crea un lote con cantidad_disponible = cantidad_inicial y registra el
// asiento de entrada con el saldo resultante. Falla con ErrEntradaInvalida si
// la cantidad no es positiva.
func (uc *InventarioUseCase) Recibir(ctx context.Context, in RecibirInput, now time.Time) (*entity.Lote, error) {
	if in.Cantidad <= 0 || in.VarianteID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.CostoTotal.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}

	var lote *entity.Lote
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		varianteRepo repository.VarianteRepository,
	) error {
		// Bloquea la fila de la variante para serializar mutaciones del libro
		variante, err := varianteRepo.GetForUpdate(in.VarianteID)
		if err != nil {
			return err
		}
		if variante == nil {
			return domain.ErrNoEncontrado
		}

		costoUnitario := decimal.Zero
		if in.Cantidad > 0 {
			costoUnitario = in.CostoTotal.DivRound(decimal.NewFromInt(int64(in.Cantidad)), 4)
		}
		unidadesPorPresentacion := in.UnidadesPorPresentacion
		if unidadesPorPresentacion <= 0 {
			unidadesPorPresentacion = 1
		}
		lote = &entity.Lote{
			ID:                      uuid.New().String(),
			CompraID:                in.CompraID,
			ProveedorID:             in.ProveedorID,
			ProductoID:              in.ProductoID,
			VarianteID:              in.VarianteID,
			CodigoLote:              in.CodigoLote,
			Presentacion:            in.Presentacion,
			UnidadesPorPresentacion: unidadesPorPresentacion,
			CantidadInicial:         in.Cantidad,
			CantidadDisponible:      in.Cantidad,
			CostoTotal:              in.CostoTotal,
			CostoUnitario:           costoUnitario,
			FechaIngreso:            now,
			FechaVencimiento:        in.FechaVencimiento,
			AlmacenID:               in.AlmacenID,
		}
		if err := loteRepo.Create(lote); err != nil {
			return err
		}

		saldo := variante.Stock + in.Cantidad
		if err := uc.registrarMovimiento(movRepo, &entity.MovimientoInventario{
			LoteID:        &lote.ID,
			VarianteID:    in.VarianteID,
			Tipo:          entity.MovimientoEntrada,
			Cantidad:      in.Cantidad,
			SaldoDespues:  saldo,
			CostoUnitario: &costoUnitario,
			TotalCosto:    &in.CostoTotal,
			Motivo:        "recepción de lote",
			UsuarioID:     usuarioPtr(in.UsuarioID),
			Fecha:         now,
		}); err != nil {
			return err
		}
		return varianteRepo.UpdateStock(in.VarianteID, saldo)
	})
	if err != nil {
		return nil, err
	}
	return lote, nil
}

// Descontar retira cantidad unidades de la variante consumiendo lotes según la
// política FEFO/FIFO y registra un asiento de salida por cada lote consumido,
// con saldo_despues incremental. Es todo-o-nada: con stock insuficiente no se
// persiste ningún asiento ni se toca ningún lote (ErrStockInsuficiente aborta
// la transacción completa).
func (uc *InventarioUseCase) Descontar(ctx context.Context, varianteID string, cantidad int, motivo, usuarioID string, now time.Time) ([]*entity.MovimientoInventario, error) {
	if cantidad <= 0 || varianteID == "" {
		return nil, domain.ErrEntradaInvalida
	}

	var movimientos []*entity.MovimientoInventario
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		varianteRepo repository.VarianteRepository,
	) error {
		var err error
		movimientos, err = DescontarEnTx(loteRepo, movRepo, varianteRepo, varianteID, cantidad, motivo, usuarioID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movimientos, nil
}

// DescontarEnTx ejecuta el descuento FEFO/FIFO con repositorios ya atados a una
// transacción abierta. Lo comparten este caso de uso y la finalización de
// pedidos, que descuenta cada línea dentro de su propia transacción junto con
// los snapshots del pedido.
func DescontarEnTx(
	loteRepo repository.LoteRepository,
	movRepo repository.MovimientoRepository,
	varianteRepo repository.VarianteRepository,
	varianteID string,
	cantidad int,
	motivo, usuarioID string,
	now time.Time,
) ([]*entity.MovimientoInventario, error) {
	if cantidad <= 0 || varianteID == "" {
		return nil, domain.ErrEntradaInvalida
	}
	variante, err := varianteRepo.GetForUpdate(varianteID)
	if err != nil {
		return nil, err
	}
	if variante == nil {
		return nil, domain.ErrNoEncontrado
	}
	lotes, err := loteRepo.ListByVarianteForUpdate(varianteID)
	if err != nil {
		return nil, err
	}

	plan, ok := domaininv.PlanDeSalida(lotes, cantidad)
	if !ok {
		return nil, domain.ErrStockInsuficiente
	}

	var movimientos []*entity.MovimientoInventario
	saldo := variante.Stock
	for _, consumo := range plan {
		nuevoDisponible := consumo.Lote.CantidadDisponible - consumo.Cantidad
		if err := loteRepo.UpdateDisponible(consumo.Lote.ID, nuevoDisponible); err != nil {
			return nil, err
		}
		saldo -= consumo.Cantidad
		costoUnitario := consumo.Lote.CostoUnitario
		totalCosto := costoUnitario.Mul(decimal.NewFromInt(int64(consumo.Cantidad))).Neg()
		mov := &entity.MovimientoInventario{
			ID:            uuid.New().String(),
			LoteID:        &consumo.Lote.ID,
			VarianteID:    varianteID,
			Tipo:          entity.MovimientoSalida,
			Cantidad:      -consumo.Cantidad,
			SaldoDespues:  saldo,
			CostoUnitario: &costoUnitario,
			TotalCosto:    &totalCosto,
			Motivo:        motivo,
			UsuarioID:     usuarioPtr(usuarioID),
			Fecha:         now,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, err
		}
		movimientos = append(movimientos, mov)
	}
	if err := varianteRepo.UpdateStock(varianteID, saldo); err != nil {
		return nil, err
	}
	return movimientos, nil
}

// Ajustar registra una corrección directa con delta con signo y un único
// asiento de ajuste. Para conservar el invariante stock == Σ lotes, un delta
// positivo crea un lote de regularización (costo cero, sin vencimiento) y uno
// negativo drena los lotes en el mismo orden de salida. Falla si el delta
// llevaría el stock total a negativo.
func (uc *InventarioUseCase) Ajustar(ctx context.Context, varianteID string, delta int, motivo, usuarioID string, now time.Time) (*entity.MovimientoInventario, error) {
	if delta == 0 || varianteID == "" {
		return nil, domain.ErrEntradaInvalida
	}

	var movimiento *entity.MovimientoInventario
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		varianteRepo repository.VarianteRepository,
	) error {
		variante, err := varianteRepo.GetForUpdate(varianteID)
		if err != nil {
			return err
		}
		if variante == nil {
			return domain.ErrNoEncontrado
		}
		saldo := variante.Stock + delta
		if saldo < 0 {
			return domain.ErrStockInsuficiente
		}

		if delta > 0 {
			lote := &entity.Lote{
				ID:                      uuid.New().String(),
				ProductoID:              variante.ProductoID,
				VarianteID:              varianteID,
				CodigoLote:              "AJUSTE",
				UnidadesPorPresentacion: 1,
				CantidadInicial:         delta,
				CantidadDisponible:      delta,
				CostoTotal:              decimal.Zero,
				CostoUnitario:           decimal.Zero,
				FechaIngreso:            now,
			}
			if err := loteRepo.Create(lote); err != nil {
				return err
			}
		} else {
			lotes, err := loteRepo.ListByVarianteForUpdate(varianteID)
			if err != nil {
				return err
			}
			plan, ok := domaininv.PlanDeSalida(lotes, -delta)
			if !ok {
				return domain.ErrStockInsuficiente
			}
			for _, consumo := range plan {
				if err := loteRepo.UpdateDisponible(consumo.Lote.ID, consumo.Lote.CantidadDisponible-consumo.Cantidad); err != nil {
					return err
				}
			}
		}

		movimiento = &entity.MovimientoInventario{
			VarianteID:   varianteID,
			Tipo:         entity.MovimientoAjuste,
			Cantidad:     delta,
			SaldoDespues: saldo,
			Motivo:       motivo,
			UsuarioID:    usuarioPtr(usuarioID),
			Fecha:        now,
		}
		if err := uc.registrarMovimiento(movRepo, movimiento); err != nil {
			return err
		}
		return varianteRepo.UpdateStock(varianteID, saldo)
	})
	if err != nil {
		return nil, err
	}
	return movimiento, nil
}

// Reservar retiene cantidad unidades para un checkout en curso sin descontar
// lotes. El asiento de reserva no altera el stock físico: saldo_despues se
// registra sin cambio. Falla con ErrStockInsuficiente si el saldo vendible
// (disponible − reservado) no alcanza.
func (uc *InventarioUseCase) Reservar(ctx context.Context, varianteID string, cantidad int, usuarioID string, now time.Time) (*entity.MovimientoInventario, error) {
	return uc.retencion(ctx, varianteID, cantidad, entity.MovimientoReserva, usuarioID, now)
}

// Liberar devuelve al pool vendible una retención previa (checkout abandonado
// o cancelado). Falla con ErrEntradaInvalida si se intenta liberar más de lo reservado.
func (uc *InventarioUseCase) Liberar(ctx context.Context, varianteID string, cantidad int, usuarioID string, now time.Time) (*entity.MovimientoInventario, error) {
	return uc.retencion(ctx, varianteID, cantidad, entity.MovimientoDevolucion, usuarioID, now)
}

func (uc *InventarioUseCase) retencion(ctx context.Context, varianteID string, cantidad int, tipo, usuarioID string, now time.Time) (*entity.MovimientoInventario, error) {
	if cantidad <= 0 || varianteID == "" {
		return nil, domain.ErrEntradaInvalida
	}

	var movimiento *entity.MovimientoInventario
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		movRepo repository.MovimientoRepository,
		varianteRepo repository.VarianteRepository,
	) error {
		variante, err := varianteRepo.GetForUpdate(varianteID)
		if err != nil {
			return err
		}
		if variante == nil {
			return domain.ErrNoEncontrado
		}
		reservado, err := movRepo.TotalReservado(varianteID)
		if err != nil {
			return err
		}

		delta := cantidad
		if tipo == entity.MovimientoReserva {
			if variante.Stock-reservado < cantidad {
				return domain.ErrStockInsuficiente
			}
		} else {
			if reservado < cantidad {
				return domain.ErrEntradaInvalida
			}
			delta = -cantidad
		}

		movimiento = &entity.MovimientoInventario{
			VarianteID:   varianteID,
			Tipo:         tipo,
			Cantidad:     delta,
			SaldoDespues: variante.Stock, // retención lógica: el stock físico no cambia
			UsuarioID:    usuarioPtr(usuarioID),
			Fecha:        now,
		}
		return uc.registrarMovimiento(movRepo, movimiento)
	})
	if err != nil {
		return nil, err
	}
	return movimiento, nil
}

// SaldoVendible devuelve el stock físico, lo reservado y el saldo vendible
// (disponible − reservado) de una variante. Lectura sin bloqueo.
func (uc *InventarioUseCase) SaldoVendible(ctx context.Context, varianteID string) (disponible, reservado, vendible int, err error) {
	variante, err := uc.varianteRepo.GetByID(varianteID)
	if err != nil {
		return 0, 0, 0, err
	}
	if variante == nil {
		return 0, 0, 0, domain.ErrNoEncontrado
	}
	reservado, err = uc.movRepo.TotalReservado(varianteID)
	if err != nil {
		return 0, 0, 0, err
	}
	return variante.Stock, reservado, variante.Stock - reservado, nil
}

// Movimientos devuelve el libro de la variante paginado, más recientes primero.
func (uc *InventarioUseCase) Movimientos(ctx context.Context, varianteID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return uc.movRepo.ListByVariante(varianteID, from, to, limit, offset)
}

func (uc *InventarioUseCase) registrarMovimiento(movRepo repository.MovimientoRepository, mov *entity.MovimientoInventario) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	return movRepo.Create(mov)
}

func usuarioPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
