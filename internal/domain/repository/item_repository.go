package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ItemRepository define el puerto de lectura del maestro de artículos.
// Los Get devuelven (nil, nil) cuando el artículo no existe.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error)
	// Create solo lo usa la carga de datos de demostración.
	Create(ctx context.Context, item *entity.Item) error
}
