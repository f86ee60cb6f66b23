package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Confirma exactamente una vez si fn devuelve nil; en cualquier otro caso revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
