package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockFilter filtra la consulta de buckets. Search aplica subcadena sobre SKU, nombre y código de ubicación.
type StockFilter struct {
	Search        string
	OnlyAvailable bool
}

// StockRepository define el puerto para consultar/actualizar buckets de stock.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el bucket o (nil, nil) si no existe.
	Get(ctx context.Context, key entity.StockKey) (*entity.Stock, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.Stock, error)
	// Save inserta el bucket si Version == 0, o actualiza con compare-and-swap sobre Version.
	// Si la versión cambió o la clave ya existe devuelve domain.ErrConcurrentModification.
	// En éxito incrementa stock.Version.
	Save(ctx context.Context, stock *entity.Stock) error
	ListLines(ctx context.Context, filter StockFilter) ([]*entity.StockLine, error)
}
