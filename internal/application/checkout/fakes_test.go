package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/application/promo"
	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// memStore estado compartido de los fakes. El clon profundo permite simular el
// ROLLBACK de la transacción de finalización.
type memStore struct {
	variantes    map[string]*entity.ProductoVariante
	lotes        map[string]*entity.Lote
	ordenLotes   []string
	movimientos  []*entity.MovimientoInventario
	carritos     map[string]*entity.Carrito
	carritoItems []*entity.CarritoItem
	pedidos      map[string]*entity.Pedido
	pedidoItems  []*entity.PedidoItem
	aplicadas    []*entity.PromocionAplicada
	tarifas      []*entity.TarifaEnvio
	envios       []*entity.Envio
	logs         []*entity.LogAccion
}

func newMemStore() *memStore {
	return &memStore{
		variantes: map[string]*entity.ProductoVariante{},
		lotes:     map[string]*entity.Lote{},
		carritos:  map[string]*entity.Carrito{},
		pedidos:   map[string]*entity.Pedido{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, v := range s.variantes {
		vv := *v
		c.variantes[id] = &vv
	}
	for id, l := range s.lotes {
		ll := *l
		c.lotes[id] = &ll
	}
	c.ordenLotes = append([]string(nil), s.ordenLotes...)
	for _, m := range s.movimientos {
		mm := *m
		c.movimientos = append(c.movimientos, &mm)
	}
	for id, ca := range s.carritos {
		cc := *ca
		c.carritos[id] = &cc
	}
	for _, it := range s.carritoItems {
		ii := *it
		c.carritoItems = append(c.carritoItems, &ii)
	}
	for id, p := range s.pedidos {
		pp := *p
		c.pedidos[id] = &pp
	}
	for _, it := range s.pedidoItems {
		ii := *it
		c.pedidoItems = append(c.pedidoItems, &ii)
	}
	for _, a := range s.aplicadas {
		aa := *a
		c.aplicadas = append(c.aplicadas, &aa)
	}
	for _, t := range s.tarifas {
		tt := *t
		c.tarifas = append(c.tarifas, &tt)
	}
	for _, e := range s.envios {
		ee := *e
		c.envios = append(c.envios, &ee)
	}
	for _, l := range s.logs {
		ll := *l
		c.logs = append(c.logs, &ll)
	}
	return c
}

type memTxRunner struct{ store *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(Repos) error) error {
	snapshot := r.store.clone()
	err := fn(Repos{
		Lotes:       &memLoteRepo{r.store},
		Movimientos: &memMovRepo{r.store},
		Variantes:   &memVarianteRepo{r.store},
		Pedidos:     &memPedidoRepo{r.store},
		Carritos:    &memCarritoRepo{r.store},
		Envios:      &memEnvioRepo{r.store},
		Logs:        &memLogRepo{r.store},
	})
	if err != nil {
		*r.store = *snapshot
	}
	return err
}

// evaluadorStub devuelve un resultado fijo, para aislar el checkout del motor.
type evaluadorStub struct {
	resultado promo.Resultado
	err       error
}

func (e *evaluadorStub) Evaluar(_ context.Context, lineas []promo.Linea, _ string, _ time.Time) (promo.Resultado, error) {
	if e.err != nil {
		return promo.Resultado{}, e.err
	}
	res := e.resultado
	if res.PorItem == nil {
		res.PorItem = make([]*promo.ItemDescuento, len(lineas))
	}
	return res, nil
}

type memVarianteRepo struct{ s *memStore }

func (r *memVarianteRepo) Create(v *entity.ProductoVariante) error {
	vv := *v
	r.s.variantes[v.ID] = &vv
	return nil
}
func (r *memVarianteRepo) GetByID(id string) (*entity.ProductoVariante, error) {
	v, ok := r.s.variantes[id]
	if !ok {
		return nil, nil
	}
	vv := *v
	return &vv, nil
}
func (r *memVarianteRepo) GetBySKU(string) (*entity.ProductoVariante, error) { return nil, nil }
func (r *memVarianteRepo) GetForUpdate(id string) (*entity.ProductoVariante, error) {
	return r.GetByID(id)
}
func (r *memVarianteRepo) ListByProducto(string) ([]*entity.ProductoVariante, error) {
	return nil, nil
}
func (r *memVarianteRepo) Update(v *entity.ProductoVariante) error {
	vv := *v
	r.s.variantes[v.ID] = &vv
	return nil
}
func (r *memVarianteRepo) UpdateStock(id string, stock int) error {
	v, ok := r.s.variantes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	v.Stock = stock
	return nil
}

type memLoteRepo struct{ s *memStore }

func (r *memLoteRepo) Create(l *entity.Lote) error {
	ll := *l
	r.s.lotes[l.ID] = &ll
	r.s.ordenLotes = append(r.s.ordenLotes, l.ID)
	return nil
}
func (r *memLoteRepo) GetByID(id string) (*entity.Lote, error) {
	l, ok := r.s.lotes[id]
	if !ok {
		return nil, nil
	}
	ll := *l
	return &ll, nil
}
func (r *memLoteRepo) ListByVariante(varianteID string) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, id := range r.s.ordenLotes {
		l := r.s.lotes[id]
		if l.VarianteID == varianteID {
			ll := *l
			out = append(out, &ll)
		}
	}
	return out, nil
}
func (r *memLoteRepo) ListByVarianteForUpdate(varianteID string) ([]*entity.Lote, error) {
	return r.ListByVariante(varianteID)
}
func (r *memLoteRepo) UpdateDisponible(id string, cantidadDisponible int) error {
	l, ok := r.s.lotes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	l.CantidadDisponible = cantidadDisponible
	return nil
}

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Create(m *entity.MovimientoInventario) error {
	mm := *m
	r.s.movimientos = append(r.s.movimientos, &mm)
	return nil
}
func (r *memMovRepo) ListByVariante(string, *time.Time, *time.Time, int, int) ([]*entity.MovimientoInventario, error) {
	return nil, nil
}
func (r *memMovRepo) UltimoSaldo(varianteID string) (int, error) {
	for i := len(r.s.movimientos) - 1; i >= 0; i-- {
		if r.s.movimientos[i].VarianteID == varianteID {
			return r.s.movimientos[i].SaldoDespues, nil
		}
	}
	return 0, nil
}
func (r *memMovRepo) TotalReservado(string) (int, error) { return 0, nil }

type memCarritoRepo struct{ s *memStore }

func (r *memCarritoRepo) Create(c *entity.Carrito) error {
	cc := *c
	r.s.carritos[c.ID] = &cc
	return nil
}
func (r *memCarritoRepo) GetByID(id string) (*entity.Carrito, error) {
	c, ok := r.s.carritos[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}
func (r *memCarritoRepo) GetActivoByUsuario(usuarioID string) (*entity.Carrito, error) {
	for _, c := range r.s.carritos {
		if c.Activo && c.UsuarioID != nil && *c.UsuarioID == usuarioID {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}
func (r *memCarritoRepo) Update(c *entity.Carrito) error {
	cc := *c
	r.s.carritos[c.ID] = &cc
	return nil
}
func (r *memCarritoRepo) AddItem(item *entity.CarritoItem) error {
	ii := *item
	r.s.carritoItems = append(r.s.carritoItems, &ii)
	return nil
}
func (r *memCarritoRepo) UpdateItem(item *entity.CarritoItem) error {
	for i, it := range r.s.carritoItems {
		if it.ID == item.ID {
			ii := *item
			r.s.carritoItems[i] = &ii
			return nil
		}
	}
	return domain.ErrNoEncontrado
}
func (r *memCarritoRepo) RemoveItem(itemID string) error {
	for i, it := range r.s.carritoItems {
		if it.ID == itemID {
			r.s.carritoItems = append(r.s.carritoItems[:i], r.s.carritoItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoEncontrado
}
func (r *memCarritoRepo) ItemsByCarrito(carritoID string) ([]*entity.CarritoItem, error) {
	var out []*entity.CarritoItem
	for _, it := range r.s.carritoItems {
		if it.CarritoID == carritoID {
			ii := *it
			out = append(out, &ii)
		}
	}
	return out, nil
}

type memPedidoRepo struct{ s *memStore }

func (r *memPedidoRepo) Create(p *entity.Pedido) error {
	pp := *p
	r.s.pedidos[p.ID] = &pp
	return nil
}
func (r *memPedidoRepo) CreateItem(item *entity.PedidoItem) error {
	ii := *item
	r.s.pedidoItems = append(r.s.pedidoItems, &ii)
	return nil
}
func (r *memPedidoRepo) CreatePromocionAplicada(a *entity.PromocionAplicada) error {
	aa := *a
	r.s.aplicadas = append(r.s.aplicadas, &aa)
	return nil
}
func (r *memPedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	p, ok := r.s.pedidos[id]
	if !ok {
		return nil, nil
	}
	pp := *p
	return &pp, nil
}
func (r *memPedidoRepo) GetByCodigo(codigo string) (*entity.Pedido, error) {
	for _, p := range r.s.pedidos {
		if p.Codigo == codigo {
			pp := *p
			return &pp, nil
		}
	}
	return nil, nil
}
func (r *memPedidoRepo) ItemsByPedido(pedidoID string) ([]*entity.PedidoItem, error) {
	var out []*entity.PedidoItem
	for _, it := range r.s.pedidoItems {
		if it.PedidoID == pedidoID {
			ii := *it
			out = append(out, &ii)
		}
	}
	return out, nil
}
func (r *memPedidoRepo) PromocionesAplicadas(pedidoID string) ([]*entity.PromocionAplicada, error) {
	var out []*entity.PromocionAplicada
	for _, a := range r.s.aplicadas {
		if a.PedidoID == pedidoID {
			aa := *a
			out = append(out, &aa)
		}
	}
	return out, nil
}
func (r *memPedidoRepo) List(string, int, int) ([]*entity.Pedido, error) { return nil, nil }
func (r *memPedidoRepo) UpdateEstado(id, estado string) error {
	p, ok := r.s.pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.Estado = estado
	return nil
}

type memEnvioRepo struct{ s *memStore }

func (r *memEnvioRepo) CreateEmpresa(*entity.EmpresaEnvio) error         { return nil }
func (r *memEnvioRepo) ListEmpresas() ([]*entity.EmpresaEnvio, error)    { return nil, nil }
func (r *memEnvioRepo) CreateRegion(*entity.Region) error                { return nil }
func (r *memEnvioRepo) CreateCiudad(*entity.Ciudad) error                { return nil }
func (r *memEnvioRepo) ListCiudades(string) ([]*entity.Ciudad, error)    { return nil, nil }
func (r *memEnvioRepo) CreateTarifa(t *entity.TarifaEnvio) error {
	tt := *t
	r.s.tarifas = append(r.s.tarifas, &tt)
	return nil
}
func (r *memEnvioRepo) FindTarifa(ciudadID string, pesoKg decimal.Decimal) (*entity.TarifaEnvio, error) {
	var mejor *entity.TarifaEnvio
	for _, t := range r.s.tarifas {
		if !t.Activo || t.CiudadID != ciudadID {
			continue
		}
		if t.PesoMinKg != nil && pesoKg.LessThan(*t.PesoMinKg) {
			continue
		}
		if t.PesoMaxKg != nil && pesoKg.GreaterThan(*t.PesoMaxKg) {
			continue
		}
		if mejor == nil || t.Costo.LessThan(mejor.Costo) {
			tt := *t
			mejor = &tt
		}
	}
	return mejor, nil
}
func (r *memEnvioRepo) CreateEnvio(e *entity.Envio) error {
	ee := *e
	r.s.envios = append(r.s.envios, &ee)
	return nil
}
func (r *memEnvioRepo) GetEnvioByPedido(pedidoID string) (*entity.Envio, error) {
	for _, e := range r.s.envios {
		if e.PedidoID == pedidoID {
			ee := *e
			return &ee, nil
		}
	}
	return nil, nil
}
func (r *memEnvioRepo) UpdateEnvio(e *entity.Envio) error {
	for i, ex := range r.s.envios {
		if ex.ID == e.ID {
			ee := *e
			r.s.envios[i] = &ee
			return nil
		}
	}
	return domain.ErrNoEncontrado
}

type memLogRepo struct{ s *memStore }

func (r *memLogRepo) Create(l *entity.LogAccion) error {
	ll := *l
	r.s.logs = append(r.s.logs, &ll)
	return nil
}
func (r *memLogRepo) List(int, int) ([]*entity.LogAccion, error) {
	return append([]*entity.LogAccion(nil), r.s.logs...), nil
}

var _ repository.EnvioRepository = (*memEnvioRepo)(nil)
