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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta: la tabla tiene un trigger que rechaza UPDATE y DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, item_id, from_location_id, to_location_id, lot_id, serial_number,
		                       quantity, user_id, reference_number, notes, "timestamp")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Type), m.ItemID, nullable(m.FromLocationID), nullable(m.ToLocationID), nullable(m.LotID),
		nullable(m.SerialNumber), m.Quantity, m.UserID, nullable(m.ReferenceNumber), nullable(m.Notes), m.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, type, item_id, from_location_id, to_location_id, lot_id, serial_number,
		       quantity, user_id, reference_number, notes, "timestamp"
		FROM movements WHERE id = $1`
	var (
		m                        entity.Movement
		mType                    string
		itemID, from, to, lotID  *string
		serial, reference, notes *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &mType, &itemID, &from, &to, &lotID, &serial,
		&m.Quantity, &m.UserID, &reference, &notes, &m.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.Type = entity.MovementType(mType)
	m.ItemID, m.FromLocationID, m.ToLocationID, m.LotID = deref(itemID), deref(from), deref(to), deref(lotID)
	m.SerialNumber, m.ReferenceNumber, m.Notes = deref(serial), deref(reference), deref(notes)
	return &m, nil
}

// ListLines lista los movimientos del rango (y tipo) con la identidad de sus referencias.
// Las referencias borradas llegan como NULL.
func (r *MovementRepo) ListLines(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementLine, error) {
	query := `
		SELECT m.id, m.type, m.item_id, m.from_location_id, m.to_location_id, m.lot_id, m.serial_number,
		       m.quantity, m.user_id, m.reference_number, m.notes, m."timestamp",
		       i.sku, i.name, fl.code, tl.code, lt.number
		FROM movements m
		LEFT JOIN items i ON i.id = m.item_id
		LEFT JOIN locations fl ON fl.id = m.from_location_id
		LEFT JOIN locations tl ON tl.id = m.to_location_id
		LEFT JOIN lots lt ON lt.id = m.lot_id
		WHERE m."timestamp" >= $1 AND m."timestamp" <= $2`
	args := []any{filter.From, filter.To}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND m.type = $%d", len(args))
	}
	query += ` ORDER BY m."timestamp" DESC, m.seq DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementLine
	for rows.Next() {
		var (
			l                        entity.MovementLine
			mType                    string
			itemID, from, to, lotID  *string
			serial, reference, notes *string
		)
		if err := rows.Scan(&l.ID, &mType, &itemID, &from, &to, &lotID, &serial,
			&l.Quantity, &l.UserID, &reference, &notes, &l.Timestamp,
			&l.ItemSKU, &l.ItemName, &l.FromLocationCode, &l.ToLocationCode, &l.LotNumber); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		l.Type = entity.MovementType(mType)
		l.ItemID, l.FromLocationID, l.ToLocationID, l.LotID = deref(itemID), deref(from), deref(to), deref(lotID)
		l.SerialNumber, l.ReferenceNumber, l.Notes = deref(serial), deref(reference), deref(notes)
		list = append(list, &l)
	}
	return list, rows.Err()
}
