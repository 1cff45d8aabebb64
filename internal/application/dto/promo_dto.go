package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// ObjetivoPromocionRequest objetivo de una promoción. Los campos gratis_* solo
// aplican al tipo x_por_y.
type ObjetivoPromocionRequest struct {
	Tipo              string `json:"tipo" validate:"required,oneof=producto variante"`
	ID                string `json:"id" validate:"required"`
	GratisTipo        string `json:"gratis_tipo"`
	GratisID          string `json:"gratis_id"`
	CantidadRequerida int    `json:"cantidad_requerida"`
	CantidadGratis    int    `json:"cantidad_gratis"`
}

// CrearPromocionRequest entrada para crear una promoción con sus objetivos.
type CrearPromocionRequest struct {
	Nombre         string                     `json:"nombre" validate:"required,min=1,max=200"`
	Codigo         *string                    `json:"codigo"`
	TipoDescuento  string                     `json:"tipo_descuento" validate:"required,oneof=porcentaje monto_fijo x_por_y"`
	ValorDescuento decimal.Decimal            `json:"valor_descuento"`
	FechaInicio    time.Time                  `json:"fecha_inicio" validate:"required"`
	FechaFin       *time.Time                 `json:"fecha_fin"`
	MinCompra      *decimal.Decimal           `json:"min_compra"`
	MaxUsos        *int                       `json:"max_usos"`
	Objetivos      []ObjetivoPromocionRequest `json:"objetivos"`
}

// ObjetivoPromocionResponse salida de un objetivo de promoción.
type ObjetivoPromocionResponse struct {
	Tipo              string `json:"tipo"`
	ID                string `json:"id"`
	GratisTipo        string `json:"gratis_tipo,omitempty"`
	GratisID          string `json:"gratis_id,omitempty"`
	CantidadRequerida int    `json:"cantidad_requerida,omitempty"`
	CantidadGratis    int    `json:"cantidad_gratis,omitempty"`
}

// PromocionResponse salida de una promoción.
type PromocionResponse struct {
	ID             string                      `json:"id"`
	Nombre         string                      `json:"nombre"`
	Codigo         *string                     `json:"codigo,omitempty"`
	TipoDescuento  string                      `json:"tipo_descuento"`
	ValorDescuento decimal.Decimal             `json:"valor_descuento"`
	FechaInicio    time.Time                   `json:"fecha_inicio"`
	FechaFin       *time.Time                  `json:"fecha_fin,omitempty"`
	Activo         bool                        `json:"activo"`
	MinCompra      *decimal.Decimal            `json:"min_compra,omitempty"`
	MaxUsos        *int                        `json:"max_usos,omitempty"`
	Objetivos      []ObjetivoPromocionResponse `json:"objetivos,omitempty"`
}

// PromocionFromEntity mapea la promoción y sus objetivos a la respuesta.
func PromocionFromEntity(p *entity.Promocion, objetivos []*entity.PromocionProducto) PromocionResponse {
	out := PromocionResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Codigo:         p.Codigo,
		TipoDescuento:  p.TipoDescuento,
		ValorDescuento: p.ValorDescuento,
		FechaInicio:    p.FechaInicio,
		FechaFin:       p.FechaFin,
		Activo:         p.Activo,
		MinCompra:      p.MinCompra,
		MaxUsos:        p.MaxUsos,
	}
	for _, o := range objetivos {
		resp := ObjetivoPromocionResponse{
			Tipo:              o.Objetivo.Tipo,
			ID:                o.Objetivo.ID,
			CantidadRequerida: o.CantidadRequerida,
			CantidadGratis:    o.CantidadGratis,
		}
		if o.ObjetivoGratis != nil {
			resp.GratisTipo = o.ObjetivoGratis.Tipo
			resp.GratisID = o.ObjetivoGratis.ID
		}
		out.Objetivos = append(out.Objetivos, resp)
	}
	return out
}
