package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Los códigos de barras se agregan en un arreglo para leer el artículo en una sola consulta.
const itemSelect = `
		SELECT i.id, i.sku, i.name, i.description, i.unit_of_measure, i.is_active, i.requires_lot, i.requires_serial,
		       i.shelf_life_days, i.price, i.created_at, i.updated_at,
		       COALESCE((SELECT array_agg(b.barcode ORDER BY b.barcode) FROM item_barcodes b WHERE b.item_id = i.id), '{}')
		FROM items i`

// Create persiste un nuevo artículo con sus códigos de barras.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, sku, name, description, unit_of_measure, is_active, requires_lot, requires_serial,
		                   shelf_life_days, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.UnitOfMeasure, item.IsActive,
		item.RequiresLot, item.RequiresSerial, item.ShelfLifeDays, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	for _, b := range item.Barcodes {
		if _, err := r.q.Exec(ctx, `INSERT INTO item_barcodes (barcode, item_id) VALUES ($1, $2)`, b, item.ID); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert barcode: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.id = $1`, id)
}

// GetBySKU obtiene un artículo por SKU (ya normalizado).
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.sku = $1`, sku)
}

// GetByBarcode obtiene el artículo dueño del código de barras.
func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.id = (SELECT item_id FROM item_barcodes WHERE barcode = $1)`, barcode)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.UnitOfMeasure, &it.IsActive, &it.RequiresLot,
		&it.RequiresSerial, &it.ShelfLifeDays, &it.Price, &it.CreatedAt, &it.UpdatedAt, &it.Barcodes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}
