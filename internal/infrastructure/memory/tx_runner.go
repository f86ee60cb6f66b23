package memory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks en exclusión mutua sobre el Store. Si fn falla (o entra en panic)
// el estado se restaura a la instantánea tomada al inicio.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner con el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el lock, ejecuta fn con repos atados a la "transacción" y confirma o revierte.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	committed := false
	defer func() {
		if !committed {
			r.store.st = snapshot
		}
	}()

	if err := fn(r.store.repos(true)); err != nil {
		return err
	}
	committed = true
	return nil
}
