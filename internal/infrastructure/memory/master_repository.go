package memory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository      = (*ItemRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// ItemRepo artículos en memoria.
type ItemRepo struct{ base }

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.with(ctx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.find(ctx, func(it *entity.Item) bool { return it.SKU == sku })
}

func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	return r.find(ctx, func(it *entity.Item) bool { return it.HasBarcode(barcode) })
}

func (r *ItemRepo) find(ctx context.Context, match func(*entity.Item) bool) (*entity.Item, error) {
	var out *entity.Item
	err := r.with(ctx, func(st *state) error {
		for _, it := range st.items {
			if match(&it) {
				found := it
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Create falla con domain.ErrDuplicate si el SKU o algún código de barras ya existe.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	return r.with(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.ID == item.ID || it.SKU == item.SKU {
				return domain.ErrDuplicate
			}
			for _, b := range item.Barcodes {
				if it.HasBarcode(b) {
					return domain.ErrDuplicate
				}
			}
		}
		st.items[item.ID] = *item
		return nil
	})
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ base }

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.with(ctx, func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	var out *entity.Location
	err := r.with(ctx, func(st *state) error {
		for _, l := range st.locations {
			if l.Code == code {
				found := l
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	return r.with(ctx, func(st *state) error {
		for _, l := range st.locations {
			if l.ID == location.ID || l.Code == location.Code {
				return domain.ErrDuplicate
			}
		}
		st.locations[location.ID] = *location
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ base }

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.with(ctx, func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.with(ctx, func(st *state) error {
		for _, w := range st.warehouses {
			if w.Code == code {
				found := w
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	return r.with(ctx, func(st *state) error {
		for _, w := range st.warehouses {
			if w.ID == warehouse.ID || w.Code == warehouse.Code {
				return domain.ErrDuplicate
			}
		}
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}
