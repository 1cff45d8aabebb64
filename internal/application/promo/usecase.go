package promo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// PromoUseCase administración de promociones y fachada del motor de evaluación
// sobre las promociones persistidas.
type PromoUseCase struct {
	repo repository.PromocionRepository
}

func NewPromoUseCase(repo repository.PromocionRepository) *PromoUseCase {
	return &PromoUseCase{repo: repo}
}

// CrearInput datos para crear una promoción con sus objetivos.
type CrearInput struct {
	Nombre         string
	Codigo         *string
	TipoDescuento  string
	ValorDescuento decimal.Decimal
	FechaInicio    time.Time
	FechaFin       *time.Time
	MinCompra      *decimal.Decimal
	MaxUsos        *int
	Objetivos      []ObjetivoInput
}

// ObjetivoInput objetivo de la promoción; los campos de regalo solo aplican a x_por_y.
type ObjetivoInput struct {
	Objetivo          entity.ObjetivoPromocion
	ObjetivoGratis    *entity.ObjetivoPromocion
	CantidadRequerida int
	CantidadGratis    int
}

// Crear valida y persiste la promoción junto con sus objetivos.
func (uc *PromoUseCase) Crear(ctx context.Context, in CrearInput) (*entity.Promocion, error) {
	switch in.TipoDescuento {
	case entity.DescuentoPorcentaje, entity.DescuentoMontoFijo:
		if !in.ValorDescuento.IsPositive() {
			return nil, domain.ErrEntradaInvalida
		}
	case entity.DescuentoXPorY:
		if len(in.Objetivos) == 0 {
			return nil, domain.ErrEntradaInvalida
		}
		for _, o := range in.Objetivos {
			if o.CantidadRequerida <= 0 || o.CantidadGratis <= 0 {
				return nil, domain.ErrEntradaInvalida
			}
		}
	default:
		return nil, domain.ErrEntradaInvalida
	}
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	for _, o := range in.Objetivos {
		if !o.Objetivo.Valido() {
			return nil, domain.ErrEntradaInvalida
		}
		if o.ObjetivoGratis != nil && !o.ObjetivoGratis.Valido() {
			return nil, domain.ErrEntradaInvalida
		}
	}

	p := &entity.Promocion{
		ID:             uuid.New().String(),
		Nombre:         in.Nombre,
		Codigo:         in.Codigo,
		TipoDescuento:  in.TipoDescuento,
		ValorDescuento: in.ValorDescuento,
		FechaInicio:    in.FechaInicio,
		FechaFin:       in.FechaFin,
		Activo:         true,
		MinCompra:      in.MinCompra,
		MaxUsos:        in.MaxUsos,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	for _, o := range in.Objetivos {
		obj := &entity.PromocionProducto{
			ID:                uuid.New().String(),
			PromocionID:       p.ID,
			Objetivo:          o.Objetivo,
			ObjetivoGratis:    o.ObjetivoGratis,
			CantidadRequerida: o.CantidadRequerida,
			CantidadGratis:    o.CantidadGratis,
		}
		if err := uc.repo.CreateObjetivo(obj); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// GetByID devuelve la promoción o ErrNoEncontrado.
func (uc *PromoUseCase) GetByID(ctx context.Context, id string) (*entity.Promocion, []*entity.PromocionProducto, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, domain.ErrNoEncontrado
	}
	objetivos, err := uc.repo.ObjetivosByPromocion(id)
	if err != nil {
		return nil, nil, err
	}
	return p, objetivos, nil
}

// Desactivar apaga la promoción sin borrarla; los snapshots históricos no dependen de ella.
func (uc *PromoUseCase) Desactivar(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNoEncontrado
	}
	p.Activo = false
	return uc.repo.Update(p)
}

// Evaluar carga las promociones vigentes con sus objetivos y corre el motor.
// Descarta antes las que ya agotaron max_usos, que es responsabilidad del
// llamador según el contrato del motor.
func (uc *PromoUseCase) Evaluar(ctx context.Context, lineas []Linea, codigoCupon string, now time.Time) (Resultado, error) {
	subtotal := decimal.Zero
	for _, l := range lineas {
		if l.Cantidad <= 0 || l.PrecioUnitario.IsNegative() {
			return Resultado{}, domain.ErrEntradaInvalida
		}
		subtotal = subtotal.Add(l.Subtotal())
	}

	vigentes, err := uc.repo.ListVigentes(now)
	if err != nil {
		return Resultado{}, err
	}

	var promos []PromocionVigente
	for _, p := range vigentes {
		if p.MaxUsos != nil {
			usos, err := uc.repo.CountUsos(p.ID)
			if err != nil {
				return Resultado{}, err
			}
			if usos >= *p.MaxUsos {
				continue
			}
		}
		objetivos, err := uc.repo.ObjetivosByPromocion(p.ID)
		if err != nil {
			return Resultado{}, err
		}
		pv := PromocionVigente{Promocion: *p}
		for _, o := range objetivos {
			pv.Objetivos = append(pv.Objetivos, *o)
		}
		promos = append(promos, pv)
	}

	return Evaluate(promos, lineas, codigoCupon, subtotal, now), nil
}
