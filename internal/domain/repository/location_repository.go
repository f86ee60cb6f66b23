package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LocationRepository define el puerto de lectura de ubicaciones. (nil, nil) si no existe.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	Create(ctx context.Context, location *entity.Location) error
}
