package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/application/promo"
	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

var ahora = time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)

func newTestCheckout(t *testing.T, eval Evaluador) (*CheckoutUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	uc := NewCheckoutUseCase(
		&memTxRunner{store},
		&memCarritoRepo{store},
		&memVarianteRepo{store},
		&memEnvioRepo{store},
		&memPedidoRepo{store},
		eval,
	)
	return uc, store
}

// seedCarrito variante v1 (stock 10, 50.00, 0.5kg) y v2 (stock 5, 25.00, 1kg)
// con un carrito activo de 2×v1 y 1×v2.
func seedCarrito(store *memStore) {
	usuario := "u1"
	store.variantes["v1"] = &entity.ProductoVariante{
		ID: "v1", ProductoID: "p1", SKU: "SKU-1", Activo: true,
		Precio: decimal.RequireFromString("50.00"), PesoKg: decimal.RequireFromString("0.5"),
	}
	store.variantes["v2"] = &entity.ProductoVariante{
		ID: "v2", ProductoID: "p2", SKU: "SKU-2", Activo: true,
		Precio: decimal.RequireFromString("25.00"), PesoKg: decimal.RequireFromString("1"),
	}
	seedLote(store, "l1", "v1", 10)
	seedLote(store, "l2", "v2", 5)
	store.carritos["c1"] = &entity.Carrito{ID: "c1", UsuarioID: &usuario, Activo: true}
	store.carritoItems = append(store.carritoItems,
		&entity.CarritoItem{ID: "ci1", CarritoID: "c1", VarianteID: "v1", Cantidad: 2,
			PrecioUnitarioSnapshot: decimal.RequireFromString("50.00")},
		&entity.CarritoItem{ID: "ci2", CarritoID: "c1", VarianteID: "v2", Cantidad: 1,
			PrecioUnitarioSnapshot: decimal.RequireFromString("25.00")},
	)
}

func seedLote(store *memStore, loteID, varianteID string, cantidad int) {
	store.lotes[loteID] = &entity.Lote{
		ID: loteID, VarianteID: varianteID, ProductoID: "p",
		CantidadInicial: cantidad, CantidadDisponible: cantidad,
		CostoUnitario: decimal.RequireFromString("10.00"),
		FechaIngreso:  ahora.AddDate(0, 0, -3),
	}
	store.ordenLotes = append(store.ordenLotes, loteID)
	store.variantes[varianteID].Stock = cantidad
}

func finalizarInput() FinalizarInput {
	return FinalizarInput{
		UsuarioID:      "u1",
		CarritoID:      "c1",
		MetodoPago:     entity.PagoYape,
		DireccionEnvio: "Av. Arequipa 1234, Lima",
		CiudadID:       "lima",
	}
}

func seedTarifa(store *memStore, ciudadID, costo string) {
	store.tarifas = append(store.tarifas, &entity.TarifaEnvio{
		ID: "t1", CiudadID: ciudadID, EmpresaID: "e1", Activo: true,
		Costo: decimal.RequireFromString(costo),
	})
}

func TestFinalizar_CreaPedidoCompleto(t *testing.T) {
	eval := &evaluadorStub{resultado: promo.Resultado{
		PorItem: []*promo.ItemDescuento{
			{VarianteID: "v1", PromocionID: "promo1", NombrePromocion: "Promo verano", Monto: decimal.RequireFromString("10.00")},
			nil,
		},
		DescuentoOrden: decimal.Zero,
		Contribuciones: []promo.Contribucion{
			{PromocionID: "promo1", NombrePromocion: "Promo verano", Monto: decimal.RequireFromString("10.00")},
		},
	}}
	uc, store := newTestCheckout(t, eval)
	seedCarrito(store)
	seedTarifa(store, "lima", "15.00")

	res, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	require.NoError(t, err)
	require.NotNil(t, res.Pedido)
	assert.False(t, res.CuponRechazado)

	// subtotal 125.00, descuento 10.00, envío 15.00 → total 130.00
	p := res.Pedido
	assert.Equal(t, entity.PedidoPendiente, p.Estado)
	assert.True(t, p.Subtotal.Equal(decimal.RequireFromString("125.00")))
	assert.True(t, p.Descuento.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, p.CostoEnvio.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, p.Total.Equal(decimal.RequireFromString("130.00")))
	assert.True(t, p.Impuestos.Equal(decimal.RequireFromString("19.83")), "IGV desglosado del total: 130×18/118")
	assert.NotEmpty(t, p.Codigo)

	require.Len(t, res.Items, 2)
	item1 := res.Items[0]
	assert.Equal(t, "v1", item1.VarianteID)
	require.NotNil(t, item1.LoteOrigenID)
	assert.Equal(t, "l1", *item1.LoteOrigenID, "trazabilidad al primer lote consumido")
	assert.True(t, item1.DescuentoItem.Equal(decimal.RequireFromString("10.00")))
	require.NotNil(t, item1.PromocionID)
	assert.Equal(t, "promo1", *item1.PromocionID)
	assert.True(t, item1.TotalNeto.Equal(decimal.RequireFromString("90.00")))

	item2 := res.Items[1]
	assert.True(t, item2.DescuentoItem.IsZero())
	assert.Nil(t, item2.PromocionID)

	// Efectos colaterales en la misma transacción.
	assert.Equal(t, 8, store.variantes["v1"].Stock)
	assert.Equal(t, 4, store.variantes["v2"].Stock)
	assert.False(t, store.carritos["c1"].Activo, "el carrito queda cerrado")
	require.Len(t, store.aplicadas, 1)
	assert.Equal(t, "Promo verano", store.aplicadas[0].NombreSnapshot)
	assert.True(t, store.aplicadas[0].ValorDescuentoAplicado.Equal(decimal.RequireFromString("10.00")))
	require.Len(t, store.envios, 1)
	assert.Equal(t, p.ID, store.envios[0].PedidoID)
	assert.Equal(t, entity.EnvioPendiente, store.envios[0].EstadoEnvio)
	require.Len(t, store.logs, 1)
	assert.Equal(t, "pedido_creado", store.logs[0].Accion)
}

func TestFinalizar_StockInsuficienteReviertaTodo(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	seedCarrito(store)
	seedTarifa(store, "lima", "15.00")
	// v2 se queda corto: el carrito pide 1 pero dejamos 0 disponibles.
	store.lotes["l2"].CantidadDisponible = 0
	store.variantes["v2"].Stock = 0

	res, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Nil(t, res)

	// Nada quedó a medias: ni pedido, ni asientos, ni lotes tocados.
	assert.Empty(t, store.pedidos)
	assert.Empty(t, store.pedidoItems)
	assert.Empty(t, store.movimientos)
	assert.Empty(t, store.envios)
	assert.Equal(t, 10, store.variantes["v1"].Stock, "el descuento de v1 se revirtió")
	assert.Equal(t, 10, store.lotes["l1"].CantidadDisponible)
	assert.True(t, store.carritos["c1"].Activo, "el carrito sigue abierto")
}

func TestFinalizar_SinTarifaParaLaCiudad(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	seedCarrito(store)

	_, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
	assert.Empty(t, store.pedidos)
}

func TestFinalizar_RetiroEnTiendaSinEnvio(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	seedCarrito(store)

	in := finalizarInput()
	in.CiudadID = ""
	res, err := uc.Finalizar(context.Background(), in, ahora)
	require.NoError(t, err)
	assert.True(t, res.Pedido.CostoEnvio.IsZero())
	assert.True(t, res.Pedido.Total.Equal(decimal.RequireFromString("125.00")))
}

func TestFinalizar_CarritoCerrado(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	seedCarrito(store)
	store.carritos["c1"].Activo = false

	_, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	assert.ErrorIs(t, err, domain.ErrPedidoNoEditable)
}

func TestFinalizar_CarritoVacio(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	seedCarrito(store)
	store.carritoItems = nil

	_, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestFinalizar_CuponRechazadoNoBloquea(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{resultado: promo.Resultado{CuponRechazado: true}})
	seedCarrito(store)
	seedTarifa(store, "lima", "10.00")
	store.carritos["c1"].CuponCodigo = "NOEXISTE"

	res, err := uc.Finalizar(context.Background(), finalizarInput(), ahora)
	require.NoError(t, err)
	assert.True(t, res.CuponRechazado, "se informa, pero el pedido se crea sin el descuento")
	assert.True(t, res.Pedido.Descuento.IsZero())
}

func TestCancelar(t *testing.T) {
	uc, store := newTestCheckout(t, &evaluadorStub{})
	store.pedidos["ped1"] = &entity.Pedido{ID: "ped1", Estado: entity.PedidoPendiente}
	store.pedidos["ped2"] = &entity.Pedido{ID: "ped2", Estado: entity.PedidoEntregado}

	require.NoError(t, uc.Cancelar(context.Background(), "ped1"))
	assert.Equal(t, entity.PedidoCancelado, store.pedidos["ped1"].Estado)

	err := uc.Cancelar(context.Background(), "ped2")
	assert.ErrorIs(t, err, domain.ErrPedidoNoEditable, "un pedido terminal es inmutable")

	err = uc.Cancelar(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
