package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LotRepository es, junto con stock y movimientos, el único camino de escritura del motor
// fuera de esas tablas (creación perezosa de lotes al recibir).
type LotRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	GetByNumberAndItem(ctx context.Context, number, itemID string) (*entity.Lot, error)
	Create(ctx context.Context, lot *entity.Lot) error
	Update(ctx context.Context, lot *entity.Lot) error
	// ListByItem devuelve los lotes activos del artículo ordenados por número.
	ListByItem(ctx context.Context, itemID string) ([]*entity.Lot, error)
	// Search busca por subcadena del número (sin distinguir mayúsculas), máximo limit resultados.
	Search(ctx context.Context, itemID, term string, limit int) ([]*entity.Lot, error)
}
