package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes en memoria.
type LotRepo struct{ base }

func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	var out *entity.Lot
	err := r.with(ctx, func(st *state) error {
		if l, ok := st.lots[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LotRepo) GetByNumberAndItem(ctx context.Context, number, itemID string) (*entity.Lot, error) {
	var out *entity.Lot
	err := r.with(ctx, func(st *state) error {
		for _, l := range st.lots {
			if l.ItemID == itemID && l.Number == number {
				found := l
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	return r.with(ctx, func(st *state) error {
		for _, l := range st.lots {
			if l.ID == lot.ID || (l.ItemID == lot.ItemID && l.Number == lot.Number) {
				return domain.ErrDuplicate
			}
		}
		st.lots[lot.ID] = *lot
		return nil
	})
}

func (r *LotRepo) Update(ctx context.Context, lot *entity.Lot) error {
	return r.with(ctx, func(st *state) error {
		if _, ok := st.lots[lot.ID]; !ok {
			return domain.ErrNotFound
		}
		st.lots[lot.ID] = *lot
		return nil
	})
}

func (r *LotRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Lot, error) {
	return r.collect(ctx, func(l *entity.Lot) bool { return l.ItemID == itemID && l.IsActive }, 0)
}

func (r *LotRepo) Search(ctx context.Context, itemID, term string, limit int) ([]*entity.Lot, error) {
	term = strings.ToUpper(term)
	return r.collect(ctx, func(l *entity.Lot) bool {
		return l.IsActive && (itemID == "" || l.ItemID == itemID) && strings.Contains(strings.ToUpper(l.Number), term)
	}, limit)
}

func (r *LotRepo) collect(ctx context.Context, match func(*entity.Lot) bool, limit int) ([]*entity.Lot, error) {
	var out []*entity.Lot
	err := r.with(ctx, func(st *state) error {
		for _, l := range st.lots {
			if match(&l) {
				found := l
				out = append(out, &found)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
