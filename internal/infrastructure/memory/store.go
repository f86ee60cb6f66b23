package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Store guarda todo el estado en memoria. Un mutex serializa las transacciones
// y cada lectura fuera de transacción, así que el aislamiento equivale a SERIALIZABLE.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	warehouses map[string]entity.Warehouse
	items      map[string]entity.Item
	locations  map[string]entity.Location
	lots       map[string]entity.Lot
	stock      map[string]entity.Stock
	stockByKey map[entity.StockKey]string
	movements  []entity.Movement
}

func newState() *state {
	return &state{
		warehouses: make(map[string]entity.Warehouse),
		items:      make(map[string]entity.Item),
		locations:  make(map[string]entity.Location),
		lots:       make(map[string]entity.Lot),
		stock:      make(map[string]entity.Stock),
		stockByKey: make(map[entity.StockKey]string),
	}
}

// clone copia los mapas; las entidades se guardan por valor y se reemplazan completas, nunca se mutan en sitio.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.stockByKey {
		c.stockByKey[k] = v
	}
	c.movements = append([]entity.Movement(nil), s.movements...)
	return c
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios fuera de transacción: cada llamada toma el lock del store.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	b := base{store: s, inTx: inTx}
	return repository.Repos{
		Items:      &ItemRepo{b},
		Locations:  &LocationRepo{b},
		Warehouses: &WarehouseRepo{b},
		Lots:       &LotRepo{b},
		Stock:      &StockRepo{b},
		Movements:  &MovementRepo{b},
	}
}

type base struct {
	store *Store
	inTx  bool
}

// with ejecuta fn sobre el estado, tomando el lock si no se está dentro de una transacción.
func (b base) with(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.inTx {
		b.store.mu.Lock()
		defer b.store.mu.Unlock()
	}
	return fn(b.store.st)
}
