package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	Create(ctx context.Context, warehouse *entity.Warehouse) error
}
