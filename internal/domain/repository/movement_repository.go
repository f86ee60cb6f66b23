package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// MovementFilter rango [From, To] inclusivo y tipo opcional.
type MovementFilter struct {
	From time.Time
	To   time.Time
	Type *entity.MovementType
}

// MovementRepository define el puerto del libro de movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListLines devuelve los movimientos del filtro con su identidad resuelta, más recientes primero.
	ListLines(ctx context.Context, filter MovementFilter) ([]*entity.MovementLine, error)
}
