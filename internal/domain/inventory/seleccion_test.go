package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

func lote(id string, disponible int, ingreso time.Time, vence *time.Time) *entity.Lote {
	return &entity.Lote{
		ID:                 id,
		VarianteID:         "v1",
		CantidadInicial:    disponible,
		CantidadDisponible: disponible,
		FechaIngreso:       ingreso,
		FechaVencimiento:   vence,
	}
}

func TestOrdenarParaSalida_PereciblesPrimero(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	vence5 := base.AddDate(0, 0, 5)
	vence2 := base.AddDate(0, 0, 2)

	a := lote("a", 10, base, &vence5)
	b := lote("b", 10, base.AddDate(0, 0, -10), nil) // más antiguo pero sin vencimiento
	c := lote("c", 10, base, &vence2)

	orden := OrdenarParaSalida([]*entity.Lote{a, b, c})
	require.Len(t, orden, 3)
	assert.Equal(t, "c", orden[0].ID, "vence antes, sale primero")
	assert.Equal(t, "a", orden[1].ID)
	assert.Equal(t, "b", orden[2].ID, "sin vencimiento va al final aunque sea el más antiguo")
}

func TestOrdenarParaSalida_NoPereciblesPorIngreso(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := lote("a", 5, base.AddDate(0, 0, 3), nil)
	b := lote("b", 5, base, nil)

	orden := OrdenarParaSalida([]*entity.Lote{a, b})
	assert.Equal(t, "b", orden[0].ID, "FIFO por fecha de ingreso")
	assert.Equal(t, "a", orden[1].ID)
}

func TestOrdenarParaSalida_EmpateDesempataPorID(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := lote("b", 5, base, nil)
	b := lote("a", 5, base, nil)

	orden := OrdenarParaSalida([]*entity.Lote{a, b})
	assert.Equal(t, "a", orden[0].ID)
}

func TestPlanDeSalida_ConsumeAcrossLotes(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	vence5 := base.AddDate(0, 0, 5)
	a := lote("a", 10, base, &vence5)
	b := lote("b", 10, base, nil)

	plan, ok := PlanDeSalida([]*entity.Lote{b, a}, 12)
	require.True(t, ok)
	require.Len(t, plan, 2)
	assert.Equal(t, "a", plan[0].Lote.ID)
	assert.Equal(t, 10, plan[0].Cantidad, "agota primero el lote que vence")
	assert.Equal(t, "b", plan[1].Lote.ID)
	assert.Equal(t, 2, plan[1].Cantidad)
}

func TestPlanDeSalida_InsuficienteNoDevuelvePlanParcial(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	a := lote("a", 3, base, nil)

	plan, ok := PlanDeSalida([]*entity.Lote{a}, 5)
	assert.False(t, ok)
	assert.Nil(t, plan)
	assert.Equal(t, 3, a.CantidadDisponible, "el plan no muta los lotes")
}

func TestPlanDeSalida_IgnoraLotesAgotados(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	agotado := lote("a", 0, base, nil)
	activo := lote("b", 4, base.AddDate(0, 0, 1), nil)

	plan, ok := PlanDeSalida([]*entity.Lote{agotado, activo}, 4)
	require.True(t, ok)
	require.Len(t, plan, 1)
	assert.Equal(t, "b", plan[0].Lote.ID)
}

func TestPlanDeSalida_CantidadNoPositiva(t *testing.T) {
	_, ok := PlanDeSalida(nil, 0)
	assert.False(t, ok)
	_, ok = PlanDeSalida(nil, -1)
	assert.False(t, ok)
}
