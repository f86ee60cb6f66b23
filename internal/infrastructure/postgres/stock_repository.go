package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, item_id, location_id, lot_id, serial_number, quantity_available, quantity_reserved, version, created_at, updated_at`

// La clave admite NULL en lote y serie: IS NOT DISTINCT FROM los compara como valores.
const stockByKey = `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE item_id = $1 AND location_id = $2
		  AND lot_id IS NOT DISTINCT FROM $3::uuid
		  AND serial_number IS NOT DISTINCT FROM $4::text`

// Get obtiene el bucket de la clave; (nil, nil) si no existe.
func (r *StockRepo) Get(ctx context.Context, key entity.StockKey) (*entity.Stock, error) {
	s, err := r.getByKey(ctx, stockByKey, key)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el bucket y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, key entity.StockKey) (*entity.Stock, error) {
	s, err := r.getByKey(ctx, stockByKey+` FOR UPDATE`, key)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

func (r *StockRepo) getByKey(ctx context.Context, query string, key entity.StockKey) (*entity.Stock, error) {
	row := r.q.QueryRow(ctx, query, key.ItemID, key.LocationID, nullable(key.LotID), nullable(key.SerialNumber))
	s, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// Save inserta el bucket nuevo (Version 0) o lo actualiza con compare-and-swap sobre version.
func (r *StockRepo) Save(ctx context.Context, stock *entity.Stock) error {
	if stock.IsNew() {
		return r.insert(ctx, stock)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock
		SET quantity_available = $2, quantity_reserved = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5`,
		stock.ID, stock.QuantityAvailable.Decimal(), stock.QuantityReserved.Decimal(), stock.UpdatedAt, stock.Version,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: bucket %s: %v", domain.ErrInvariantViolation, stock.Key(), err)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: bucket %s versión %d", domain.ErrConcurrentModification, stock.Key(), stock.Version)
	}
	stock.Version++
	return nil
}

func (r *StockRepo) insert(ctx context.Context, stock *entity.Stock) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (id, item_id, location_id, lot_id, serial_number, quantity_available, quantity_reserved, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)`,
		stock.ID, stock.ItemID, stock.LocationID, nullable(stock.LotID), nullable(stock.SerialNumber),
		stock.QuantityAvailable.Decimal(), stock.QuantityReserved.Decimal(), stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// otra transacción creó el mismo bucket primero
			return fmt.Errorf("%w: bucket %s", domain.ErrConcurrentModification, stock.Key())
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: bucket %s: %v", domain.ErrInvariantViolation, stock.Key(), err)
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	stock.Version = 1
	return nil
}

// ListLines lista buckets con artículo, ubicación y lote resueltos, ordenados por SKU y ubicación.
func (r *StockRepo) ListLines(ctx context.Context, filter repository.StockFilter) ([]*entity.StockLine, error) {
	query := `
		SELECT s.id, s.item_id, s.location_id, s.lot_id, s.serial_number, s.quantity_available, s.quantity_reserved,
		       s.version, s.created_at, s.updated_at,
		       i.sku, i.name, i.unit_of_measure, i.price, l.code, l.name, lt.number, lt.expiry_date
		FROM stock s
		JOIN items i ON i.id = s.item_id
		JOIN locations l ON l.id = s.location_id
		LEFT JOIN lots lt ON lt.id = s.lot_id
		WHERE 1 = 1`
	var args []any
	if filter.OnlyAvailable {
		query += ` AND s.quantity_available > 0`
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		query += ` AND (i.sku ILIKE $1 OR i.name ILIKE $1 OR l.code ILIKE $1)`
	}
	query += ` ORDER BY i.sku, l.code, lt.number NULLS FIRST`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		var (
			line            entity.StockLine
			lotID, serial   *string
			lotNumber       *string
			avail, reserved decimal.Decimal
		)
		if err := rows.Scan(&line.ID, &line.ItemID, &line.LocationID, &lotID, &serial, &avail, &reserved,
			&line.Version, &line.CreatedAt, &line.UpdatedAt,
			&line.ItemSKU, &line.ItemName, &line.UnitOfMeasure, &line.Price, &line.LocationCode, &line.LocationName,
			&lotNumber, &line.LotExpiry); err != nil {
			return nil, fmt.Errorf("scan stock line: %w", err)
		}
		line.LotID, line.SerialNumber, line.LotNumber = deref(lotID), deref(serial), deref(lotNumber)
		if err := setQuantities(&line.Stock, avail, reserved); err != nil {
			return nil, err
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var (
		s               entity.Stock
		lotID, serial   *string
		avail, reserved decimal.Decimal
	)
	if err := row.Scan(&s.ID, &s.ItemID, &s.LocationID, &lotID, &serial, &avail, &reserved,
		&s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.LotID, s.SerialNumber = deref(lotID), deref(serial)
	if err := setQuantities(&s, avail, reserved); err != nil {
		return nil, err
	}
	return &s, nil
}

// setQuantities valida lo leído: el CHECK de la tabla hace imposible un negativo, si aparece es corrupción.
func setQuantities(s *entity.Stock, avail, reserved decimal.Decimal) error {
	a, err := valueobject.NewQuantity(avail)
	if err != nil {
		return fmt.Errorf("%w: bucket %s: %v", domain.ErrInvariantViolation, s.ID, err)
	}
	rq, err := valueobject.NewQuantity(reserved)
	if err != nil {
		return fmt.Errorf("%w: bucket %s: %v", domain.ErrInvariantViolation, s.ID, err)
	}
	s.QuantityAvailable, s.QuantityReserved = a, rq
	return nil
}
