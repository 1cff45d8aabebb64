package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// memStore estado compartido de los repositorios en memoria para los tests.
type memStore struct {
	variantes   map[string]*entity.ProductoVariante
	lotes       map[string]*entity.Lote
	ordenLotes  []string // orden de inserción, para listados deterministas
	movimientos []*entity.MovimientoInventario
}

func newMemStore() *memStore {
	return &memStore{
		variantes: map[string]*entity.ProductoVariante{},
		lotes:     map[string]*entity.Lote{},
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
	return c
}

// memTxRunner simula la transacción: si fn falla restaura el snapshot previo,
// igual que un ROLLBACK.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	loteRepo repository.LoteRepository,
	movRepo repository.MovimientoRepository,
	varianteRepo repository.VarianteRepository,
) error) error {
	snapshot := r.store.clone()
	err := fn(&memLoteRepo{r.store}, &memMovRepo{r.store}, &memVarianteRepo{r.store})
	if err != nil {
		*r.store = *snapshot
	}
	return err
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
func (r *memVarianteRepo) GetBySKU(sku string) (*entity.ProductoVariante, error) {
	for _, v := range r.s.variantes {
		if v.SKU == sku {
			vv := *v
			return &vv, nil
		}
	}
	return nil, nil
}
func (r *memVarianteRepo) GetForUpdate(id string) (*entity.ProductoVariante, error) {
	return r.GetByID(id)
}
func (r *memVarianteRepo) ListByProducto(productoID string) ([]*entity.ProductoVariante, error) {
	var out []*entity.ProductoVariante
	for _, v := range r.s.variantes {
		if v.ProductoID == productoID {
			vv := *v
			out = append(out, &vv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
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
func (r *memMovRepo) ListByVariante(varianteID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, m := range r.s.movimientos {
		if m.VarianteID == varianteID {
			mm := *m
			out = append(out, &mm)
		}
	}
	return out, nil
}
func (r *memMovRepo) UltimoSaldo(varianteID string) (int, error) {
	for i := len(r.s.movimientos) - 1; i >= 0; i-- {
		if r.s.movimientos[i].VarianteID == varianteID {
			return r.s.movimientos[i].SaldoDespues, nil
		}
	}
	return 0, nil
}
func (r *memMovRepo) TotalReservado(varianteID string) (int, error) {
	total := 0
	for _, m := range r.s.movimientos {
		if m.VarianteID != varianteID {
			continue
		}
		if m.Tipo == entity.MovimientoReserva || m.Tipo == entity.MovimientoDevolucion {
			total += m.Cantidad
		}
	}
	return total, nil
}
