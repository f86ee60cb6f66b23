package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (solo inserción).
type MovementRepo struct{ base }

func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	return r.with(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.ID == movement.ID {
				return domain.ErrDuplicate
			}
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.with(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				found := m
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) ListLines(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementLine, error) {
	var out []*entity.MovementLine
	err := r.with(ctx, func(st *state) error {
		// recorrido inverso: a igual timestamp el último insertado va primero
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.Timestamp.Before(filter.From) || m.Timestamp.After(filter.To) {
				continue
			}
			if filter.Type != nil && m.Type != *filter.Type {
				continue
			}
			line := &entity.MovementLine{Movement: m}
			if it, ok := st.items[m.ItemID]; ok {
				line.ItemSKU, line.ItemName = strPtr(it.SKU), strPtr(it.Name)
			}
			if l, ok := st.locations[m.FromLocationID]; ok {
				line.FromLocationCode = strPtr(l.Code)
			}
			if l, ok := st.locations[m.ToLocationID]; ok {
				line.ToLocationCode = strPtr(l.Code)
			}
			if lot, ok := st.lots[m.LotID]; ok {
				line.LotNumber = strPtr(lot.Number)
			}
			out = append(out, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func strPtr(s string) *string { return &s }
