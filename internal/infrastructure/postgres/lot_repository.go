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

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotSelect = `
		SELECT id, number, item_id, expiry_date, manufactured_date, is_active, created_at, updated_at
		FROM lots`

// Create persiste un lote nuevo. Dos recepciones concurrentes del mismo lote chocan en la
// clave (item_id, number) y la segunda recibe domain.ErrDuplicate.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, number, item_id, expiry_date, manufactured_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.Number, lot.ItemID, lot.ExpiryDate, lot.ManufacturedDate, lot.IsActive, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// Update actualiza solo las fechas y el estado del lote.
func (r *LotRepo) Update(ctx context.Context, lot *entity.Lot) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE lots SET expiry_date = $2, manufactured_date = $3, is_active = $4, updated_at = $5
		WHERE id = $1`,
		lot.ID, lot.ExpiryDate, lot.ManufacturedDate, lot.IsActive, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	var l entity.Lot
	err := scanLot(r.q.QueryRow(ctx, lotSelect+` WHERE id = $1`, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// GetByNumberAndItem obtiene el lote del artículo con ese número (ya normalizado).
func (r *LotRepo) GetByNumberAndItem(ctx context.Context, number, itemID string) (*entity.Lot, error) {
	var l entity.Lot
	err := scanLot(r.q.QueryRow(ctx, lotSelect+` WHERE item_id = $1 AND number = $2`, itemID, number), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot by number: %w", err)
	}
	return &l, nil
}

// ListByItem lista los lotes activos del artículo por número.
func (r *LotRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Lot, error) {
	return r.list(ctx, lotSelect+` WHERE item_id = $1 AND is_active ORDER BY number`, itemID)
}

// Search busca lotes activos cuyo número contiene term. itemID vacío busca en todos los artículos.
func (r *LotRepo) Search(ctx context.Context, itemID, term string, limit int) ([]*entity.Lot, error) {
	query := lotSelect + ` WHERE is_active AND number ILIKE $1`
	args := []any{likePattern(term)}
	if itemID != "" {
		args = append(args, itemID)
		query += fmt.Sprintf(" AND item_id = $%d", len(args))
	}
	query += ` ORDER BY number`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.list(ctx, query, args...)
}

func (r *LotRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := scanLot(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func scanLot(row pgx.Row, l *entity.Lot) error {
	return row.Scan(&l.ID, &l.Number, &l.ItemID, &l.ExpiryDate, &l.ManufacturedDate, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
}
