package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

func newTestUseCase(t *testing.T) (*InventarioUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	runner := &memTxRunner{store: store}
	uc := NewInventarioUseCase(runner, &memMovRepo{store}, &memVarianteRepo{store})
	return uc, store
}

func seedVariante(store *memStore, id string) {
	store.variantes[id] = &entity.ProductoVariante{
		ID:         id,
		ProductoID: "p1",
		SKU:        "SKU-" + id,
		Precio:     decimal.RequireFromString("10.00"),
	}
}

// verificarInvariantes comprueba que el stock cacheado de la variante coincide
// con la suma de disponibles de sus lotes y con el último saldo del libro.
func verificarInvariantes(t *testing.T, store *memStore, varianteID string) {
	t.Helper()
	v := store.variantes[varianteID]
	suma := 0
	for _, l := range store.lotes {
		if l.VarianteID == varianteID {
			require.GreaterOrEqual(t, l.CantidadDisponible, 0, "ningún lote puede quedar negativo")
			require.LessOrEqual(t, l.CantidadDisponible, l.CantidadInicial)
			suma += l.CantidadDisponible
		}
	}
	assert.Equal(t, suma, v.Stock, "stock cacheado debe igualar la suma de lotes")

	ultimo, err := (&memMovRepo{store}).UltimoSaldo(varianteID)
	require.NoError(t, err)
	assert.Equal(t, v.Stock, ultimo, "stock debe igualar el último saldo_despues")

	// Cadena de saldos: saldo[i] = saldo[i-1] + delta_fisico[i]
	saldo := 0
	for _, m := range store.movimientos {
		if m.VarianteID != varianteID {
			continue
		}
		saldo += m.DeltaFisico()
		assert.Equal(t, saldo, m.SaldoDespues, "cadena de saldos inconsistente en %s", m.Tipo)
	}
}

func TestRecibir_CreaLoteYAsiento(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	lote, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1",
		ProductoID: "p1",
		Cantidad:   10,
		CostoTotal: decimal.RequireFromString("50.00"),
		UsuarioID:  "u1",
	}, now)
	require.NoError(t, err)
	require.NotNil(t, lote)

	assert.Equal(t, 10, lote.CantidadInicial)
	assert.Equal(t, 10, lote.CantidadDisponible)
	assert.Equal(t, "5", lote.CostoUnitario.String())
	require.Len(t, store.movimientos, 1)
	assert.Equal(t, entity.MovimientoEntrada, store.movimientos[0].Tipo)
	assert.Equal(t, 10, store.movimientos[0].Cantidad)
	assert.Equal(t, 10, store.movimientos[0].SaldoDespues)
	verificarInvariantes(t, store, "v1")
}

func TestRecibir_CantidadNoPositiva(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")

	_, err := uc.Recibir(context.Background(), RecibirInput{VarianteID: "v1", Cantidad: 0}, time.Now())
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.Recibir(context.Background(), RecibirInput{VarianteID: "v1", Cantidad: -3}, time.Now())
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	assert.Empty(t, store.movimientos)
}

func TestRecibir_VarianteInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Recibir(context.Background(), RecibirInput{VarianteID: "nope", Cantidad: 5}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestDescontar_FEFOPrimeroElQueVence(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	vence := now.AddDate(0, 0, 5)

	// Lote A: vence en 5 días, 10 unidades. Lote B: sin vencimiento, 10 unidades.
	// B entra antes que A para comprobar que el vencimiento manda sobre el ingreso.
	_, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 10,
		CostoTotal: decimal.RequireFromString("30.00"), CodigoLote: "B",
	}, now.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, err = uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 10,
		CostoTotal: decimal.RequireFromString("40.00"), CodigoLote: "A", FechaVencimiento: &vence,
	}, now.AddDate(0, 0, -1))
	require.NoError(t, err)

	movs, err := uc.Descontar(context.Background(), "v1", 12, "venta", "u1", now)
	require.NoError(t, err)
	require.Len(t, movs, 2, "dos lotes consumidos, dos asientos")

	// Primero se agota A (perecible), luego 2 de B.
	assert.Equal(t, -10, movs[0].Cantidad)
	assert.Equal(t, 10, movs[0].SaldoDespues)
	assert.Equal(t, -2, movs[1].Cantidad)
	assert.Equal(t, 8, movs[1].SaldoDespues)

	loteA := store.lotes[*movs[0].LoteID]
	loteB := store.lotes[*movs[1].LoteID]
	assert.Equal(t, "A", loteA.CodigoLote)
	assert.Equal(t, 0, loteA.CantidadDisponible, "el lote agotado persiste con disponible 0")
	assert.Equal(t, "B", loteB.CodigoLote)
	assert.Equal(t, 8, loteB.CantidadDisponible)
	verificarInvariantes(t, store, "v1")
}

func TestDescontar_InsuficienteEsTodoONada(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Now()

	_, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 5,
		CostoTotal: decimal.RequireFromString("10.00"),
	}, now)
	require.NoError(t, err)

	antes := len(store.movimientos)
	movs, err := uc.Descontar(context.Background(), "v1", 8, "venta", "u1", now)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Nil(t, movs)
	assert.Len(t, store.movimientos, antes, "no debe persistir ningún asiento parcial")
	for _, l := range store.lotes {
		assert.Equal(t, 5, l.CantidadDisponible, "los lotes quedan intactos")
	}
	verificarInvariantes(t, store, "v1")
}

func TestDescontar_CantidadInvalida(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Descontar(context.Background(), "v1", 0, "venta", "", time.Now())
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestAjustar_PositivoCreaLoteDeRegularizacion(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Now()

	mov, err := uc.Ajustar(context.Background(), "v1", 7, "conteo físico", "u1", now)
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoAjuste, mov.Tipo)
	assert.Equal(t, 7, mov.Cantidad)
	assert.Equal(t, 7, mov.SaldoDespues)
	assert.Nil(t, mov.LoteID, "el ajuste no referencia lote")
	verificarInvariantes(t, store, "v1")
}

func TestAjustar_NegativoDrenaLotes(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Now()

	_, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 10,
		CostoTotal: decimal.RequireFromString("20.00"),
	}, now)
	require.NoError(t, err)

	mov, err := uc.Ajustar(context.Background(), "v1", -4, "merma", "u1", now)
	require.NoError(t, err)
	assert.Equal(t, -4, mov.Cantidad)
	assert.Equal(t, 6, mov.SaldoDespues)
	verificarInvariantes(t, store, "v1")
}

func TestAjustar_NoPermiteStockNegativo(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")

	_, err := uc.Ajustar(context.Background(), "v1", -1, "merma", "u1", time.Now())
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Empty(t, store.movimientos)
}

func TestReservarYLiberar_NoTocanLotes(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Now()

	_, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 10,
		CostoTotal: decimal.RequireFromString("20.00"),
	}, now)
	require.NoError(t, err)

	mov, err := uc.Reservar(context.Background(), "v1", 6, "u1", now)
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoReserva, mov.Tipo)
	assert.Equal(t, 10, mov.SaldoDespues, "la reserva no altera el stock físico")

	disponible, reservado, vendible, err := uc.SaldoVendible(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 10, disponible)
	assert.Equal(t, 6, reservado)
	assert.Equal(t, 4, vendible)

	// Reservar más de lo vendible falla aunque haya stock físico.
	_, err = uc.Reservar(context.Background(), "v1", 5, "u1", now)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)

	// El descuento físico sigue viendo el pool completo (la reserva es lógica).
	_, err = uc.Descontar(context.Background(), "v1", 10, "venta", "u1", now)
	require.NoError(t, err)

	_, err = uc.Liberar(context.Background(), "v1", 6, "u1", now)
	require.NoError(t, err)
	_, reservado, _, err = uc.SaldoVendible(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, reservado)

	// Liberar sin reserva previa es inválido.
	_, err = uc.Liberar(context.Background(), "v1", 1, "u1", now)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	verificarInvariantes(t, store, "v1")
}

func TestSecuencia_CadenaDeSaldosConsistente(t *testing.T) {
	uc, store := newTestUseCase(t)
	seedVariante(store, "v1")
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Recibir(context.Background(), RecibirInput{
		VarianteID: "v1", ProductoID: "p1", Cantidad: 20,
		CostoTotal: decimal.RequireFromString("100.00"),
	}, now)
	require.NoError(t, err)
	_, err = uc.Descontar(context.Background(), "v1", 5, "venta", "u1", now.Add(time.Hour))
	require.NoError(t, err)
	_, err = uc.Ajustar(context.Background(), "v1", 3, "conteo", "u1", now.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = uc.Reservar(context.Background(), "v1", 4, "u1", now.Add(3*time.Hour))
	require.NoError(t, err)
	_, err = uc.Descontar(context.Background(), "v1", 10, "venta", "u1", now.Add(4*time.Hour))
	require.NoError(t, err)

	verificarInvariantes(t, store, "v1")
	ultimo, err := (&memMovRepo{store}).UltimoSaldo("v1")
	require.NoError(t, err)
	assert.Equal(t, 8, ultimo) // 20 - 5 + 3 - 10
}
