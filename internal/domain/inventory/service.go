package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
)

// Ledger son los repositorios de stock y movimientos atados a la transacción del caller.
// El servicio nunca confirma ni revierte: eso lo hace quien abre la transacción.
type Ledger struct {
	Stock     repository.StockRepository
	Movements repository.MovementRepository
}

// StockMovementService es el único escritor de buckets de stock y del libro de movimientos.
// No valida reglas de negocio (artículo activo, capacidades de ubicación, lote/serie):
// eso es responsabilidad de los casos de uso.
type StockMovementService struct {
	now   func() time.Time
	newID func() string
}

// Option configura el servicio.
type Option func(*StockMovementService)

// WithClock reemplaza el reloj (por defecto time.Now en UTC).
func WithClock(now func() time.Time) Option {
	return func(s *StockMovementService) { s.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (por defecto uuid.NewString).
func WithIDGenerator(gen func() string) Option {
	return func(s *StockMovementService) { s.newID = gen }
}

// NewStockMovementService construye el servicio.
func NewStockMovementService(opts ...Option) *StockMovementService {
	s := &StockMovementService{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now devuelve la hora del reloj del servicio (la misma que sella los movimientos).
func (s *StockMovementService) Now() time.Time { return s.now() }

// ReceiveInput entrada de Receive.
type ReceiveInput struct {
	ItemID          string
	LocationID      string
	Quantity        valueobject.Quantity
	UserID          string
	LotID           string
	SerialNumber    string
	ReferenceNumber string
	Notes           string
}

// PutawayInput entrada de Putaway. El bucket destino conserva artículo, lote y serie del origen.
type PutawayInput struct {
	ItemID         string
	FromLocationID string
	ToLocationID   string
	Quantity       valueobject.Quantity
	UserID         string
	LotID          string
	SerialNumber   string
	Notes          string
}

// PickInput entrada de Pick. OrderNumber queda como ReferenceNumber del movimiento.
type PickInput struct {
	ItemID       string
	LocationID   string
	Quantity     valueobject.Quantity
	UserID       string
	LotID        string
	SerialNumber string
	OrderNumber  string
	Notes        string
}

// AdjustInput entrada de Adjust. NewQuantity es absoluta, no un delta.
type AdjustInput struct {
	ItemID       string
	LocationID   string
	NewQuantity  valueobject.Quantity
	UserID       string
	Reason       string
	LotID        string
	SerialNumber string
}

// Receive suma la cantidad al bucket (lo crea si no existe) y registra un movimiento Receipt.
func (s *StockMovementService) Receive(ctx context.Context, l Ledger, in ReceiveInput) (*entity.Movement, error) {
	if err := requireRefs(in.ItemID, in.LocationID, in.UserID); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, invalid("la cantidad a recibir debe ser mayor que cero")
	}
	now := s.now()
	key := entity.StockKey{ItemID: in.ItemID, LocationID: in.LocationID, LotID: in.LotID, SerialNumber: in.SerialNumber}

	bucket, err := s.lockOrCreate(ctx, l.Stock, key, now)
	if err != nil {
		return nil, err
	}
	bucket.Increase(in.Quantity, now)
	if err := l.Stock.Save(ctx, bucket); err != nil {
		return nil, err
	}
	return s.append(ctx, l, &entity.Movement{
		Type:            entity.MovementTypeReceipt,
		ItemID:          in.ItemID,
		ToLocationID:    in.LocationID,
		LotID:           in.LotID,
		SerialNumber:    in.SerialNumber,
		Quantity:        in.Quantity.Decimal(),
		UserID:          in.UserID,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		Timestamp:       now,
	})
}

// Putaway mueve la cantidad de un bucket a otro con la misma identidad (artículo, lote, serie).
// Si el origen no existe o quedaría negativo devuelve domain.ErrInvariantViolation.
func (s *StockMovementService) Putaway(ctx context.Context, l Ledger, in PutawayInput) (*entity.Movement, error) {
	if err := requireRefs(in.ItemID, in.FromLocationID, in.UserID); err != nil {
		return nil, err
	}
	if in.ToLocationID == "" {
		return nil, invalid("falta la ubicación destino")
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, invalid("la ubicación origen y destino deben ser distintas")
	}
	if !in.Quantity.IsPositive() {
		return nil, invalid("la cantidad a almacenar debe ser mayor que cero")
	}
	now := s.now()
	fromKey := entity.StockKey{ItemID: in.ItemID, LocationID: in.FromLocationID, LotID: in.LotID, SerialNumber: in.SerialNumber}
	toKey := fromKey
	toKey.LocationID = in.ToLocationID

	// Orden de bloqueo fijo para que dos traslados cruzados no se bloqueen mutuamente.
	var from, to *entity.Stock
	var err error
	if fromKey.String() < toKey.String() {
		if from, err = l.Stock.GetForUpdate(ctx, fromKey); err != nil {
			return nil, err
		}
		if to, err = s.lockOrCreate(ctx, l.Stock, toKey, now); err != nil {
			return nil, err
		}
	} else {
		if to, err = s.lockOrCreate(ctx, l.Stock, toKey, now); err != nil {
			return nil, err
		}
		if from, err = l.Stock.GetForUpdate(ctx, fromKey); err != nil {
			return nil, err
		}
	}
	if from == nil {
		return nil, fmt.Errorf("%w: no existe el bucket origen %s", domain.ErrInvariantViolation, fromKey)
	}
	if err := from.Decrease(in.Quantity, now); err != nil {
		return nil, err
	}
	to.Increase(in.Quantity, now)
	if err := l.Stock.Save(ctx, from); err != nil {
		return nil, err
	}
	if err := l.Stock.Save(ctx, to); err != nil {
		return nil, err
	}
	return s.append(ctx, l, &entity.Movement{
		Type:           entity.MovementTypePutaway,
		ItemID:         in.ItemID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		LotID:          in.LotID,
		SerialNumber:   in.SerialNumber,
		Quantity:       in.Quantity.Decimal(),
		UserID:         in.UserID,
		Notes:          in.Notes,
		Timestamp:      now,
	})
}

// Pick descuenta la cantidad del bucket y registra un movimiento Pick.
func (s *StockMovementService) Pick(ctx context.Context, l Ledger, in PickInput) (*entity.Movement, error) {
	if err := requireRefs(in.ItemID, in.LocationID, in.UserID); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, invalid("la cantidad a despachar debe ser mayor que cero")
	}
	now := s.now()
	key := entity.StockKey{ItemID: in.ItemID, LocationID: in.LocationID, LotID: in.LotID, SerialNumber: in.SerialNumber}

	bucket, err := l.Stock.GetForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if bucket == nil {
		return nil, fmt.Errorf("%w: no existe el bucket %s", domain.ErrInvariantViolation, key)
	}
	if err := bucket.Decrease(in.Quantity, now); err != nil {
		return nil, err
	}
	if err := l.Stock.Save(ctx, bucket); err != nil {
		return nil, err
	}
	return s.append(ctx, l, &entity.Movement{
		Type:            entity.MovementTypePick,
		ItemID:          in.ItemID,
		FromLocationID:  in.LocationID,
		LotID:           in.LotID,
		SerialNumber:    in.SerialNumber,
		Quantity:        in.Quantity.Decimal(),
		UserID:          in.UserID,
		ReferenceNumber: in.OrderNumber,
		Notes:           in.Notes,
		Timestamp:       now,
	})
}

// Adjust fija la cantidad disponible del bucket (lo crea si no existe). El movimiento guarda
// el delta con signo (nueva - anterior) y el motivo como nota. Un delta cero no genera movimiento.
func (s *StockMovementService) Adjust(ctx context.Context, l Ledger, in AdjustInput) (*entity.Movement, error) {
	if err := requireRefs(in.ItemID, in.LocationID, in.UserID); err != nil {
		return nil, err
	}
	now := s.now()
	key := entity.StockKey{ItemID: in.ItemID, LocationID: in.LocationID, LotID: in.LotID, SerialNumber: in.SerialNumber}

	bucket, err := s.lockOrCreate(ctx, l.Stock, key, now)
	if err != nil {
		return nil, err
	}
	prev := bucket.SetAvailable(in.NewQuantity, now)
	delta := in.NewQuantity.Delta(prev)
	if delta.IsZero() {
		return nil, invalid("la cantidad nueva (%s) es igual a la actual", in.NewQuantity)
	}
	if err := l.Stock.Save(ctx, bucket); err != nil {
		return nil, err
	}
	return s.append(ctx, l, &entity.Movement{
		Type:         entity.MovementTypeAdjustment,
		ItemID:       in.ItemID,
		ToLocationID: in.LocationID,
		LotID:        in.LotID,
		SerialNumber: in.SerialNumber,
		Quantity:     delta,
		UserID:       in.UserID,
		Notes:        in.Reason,
		Timestamp:    now,
	})
}

// lockOrCreate bloquea el bucket existente o devuelve uno nuevo (Version 0) que Save insertará.
func (s *StockMovementService) lockOrCreate(ctx context.Context, repo repository.StockRepository, key entity.StockKey, now time.Time) (*entity.Stock, error) {
	bucket, err := repo.GetForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if bucket == nil {
		bucket = entity.NewStock(s.newID(), key, now)
	}
	return bucket, nil
}

func (s *StockMovementService) append(ctx context.Context, l Ledger, m *entity.Movement) (*entity.Movement, error) {
	m.ID = s.newID()
	if err := l.Movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func requireRefs(itemID, locationID, userID string) error {
	switch {
	case itemID == "":
		return invalid("falta el artículo")
	case locationID == "":
		return invalid("falta la ubicación")
	case userID == "":
		return invalid("falta el usuario")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return domain.NewRuleError(domain.ErrInvalidInput, domain.CodeValidation, format, args...)
}
