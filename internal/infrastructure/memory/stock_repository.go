package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo buckets en memoria.
type StockRepo struct{ base }

func (r *StockRepo) Get(ctx context.Context, key entity.StockKey) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.with(ctx, func(st *state) error {
		if id, ok := st.stockByKey[key]; ok {
			s := st.stock[id]
			out = &s
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: el lock del store ya excluye a las demás transacciones.
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.Stock, error) {
	return r.Get(ctx, key)
}

func (r *StockRepo) Save(ctx context.Context, stock *entity.Stock) error {
	return r.with(ctx, func(st *state) error {
		if stock.Version == 0 {
			if _, exists := st.stockByKey[stock.Key()]; exists {
				return domain.ErrConcurrentModification
			}
			stock.Version = 1
			st.stock[stock.ID] = *stock
			st.stockByKey[stock.Key()] = stock.ID
			return nil
		}
		current, ok := st.stock[stock.ID]
		if !ok || current.Version != stock.Version {
			return domain.ErrConcurrentModification
		}
		stock.Version++
		st.stock[stock.ID] = *stock
		return nil
	})
}

func (r *StockRepo) ListLines(ctx context.Context, filter repository.StockFilter) ([]*entity.StockLine, error) {
	term := strings.ToUpper(strings.TrimSpace(filter.Search))
	var out []*entity.StockLine
	err := r.with(ctx, func(st *state) error {
		for _, s := range st.stock {
			if filter.OnlyAvailable && !s.QuantityAvailable.IsPositive() {
				continue
			}
			item := st.items[s.ItemID]
			loc := st.locations[s.LocationID]
			line := &entity.StockLine{
				Stock:         s,
				ItemSKU:       item.SKU,
				ItemName:      item.Name,
				UnitOfMeasure: item.UnitOfMeasure,
				Price:         item.Price,
				LocationCode:  loc.Code,
				LocationName:  loc.Name,
			}
			if lot, ok := st.lots[s.LotID]; ok {
				line.LotNumber = lot.Number
				line.LotExpiry = lot.ExpiryDate
			}
			if term != "" &&
				!strings.Contains(strings.ToUpper(line.ItemSKU), term) &&
				!strings.Contains(strings.ToUpper(line.ItemName), term) &&
				!strings.Contains(strings.ToUpper(line.LocationCode), term) {
				continue
			}
			out = append(out, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemSKU != out[j].ItemSKU {
			return out[i].ItemSKU < out[j].ItemSKU
		}
		if out[i].LocationCode != out[j].LocationCode {
			return out[i].LocationCode < out[j].LocationCode
		}
		return out[i].LotNumber < out[j].LotNumber
	})
	return out, nil
}
