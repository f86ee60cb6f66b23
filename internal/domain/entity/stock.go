package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/valueobject"
)

// StockKey identifica un bucket de inventario. LotID y SerialNumber vacíos significan "sin lote"/"sin serie".
type StockKey struct {
	ItemID       string
	LocationID   string
	LotID        string
	SerialNumber string
}

func (k StockKey) String() string {
	return fmt.Sprintf("%s@%s[lot=%s serial=%s]", k.ItemID, k.LocationID, k.LotID, k.SerialNumber)
}

// Stock es el bucket mutable de inventario por (artículo, ubicación, lote, serie).
// Version es el token de concurrencia optimista; 0 indica un bucket aún no persistido.
type Stock struct {
	ID                string
	ItemID            string
	LocationID        string
	LotID             string
	SerialNumber      string
	QuantityAvailable valueobject.Quantity
	QuantityReserved  valueobject.Quantity // presente pero sin uso en los flujos actuales
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewStock crea un bucket vacío para la clave dada.
func NewStock(id string, key StockKey, now time.Time) *Stock {
	return &Stock{
		ID:                id,
		ItemID:            key.ItemID,
		LocationID:        key.LocationID,
		LotID:             key.LotID,
		SerialNumber:      key.SerialNumber,
		QuantityAvailable: valueobject.ZeroQuantity(),
		QuantityReserved:  valueobject.ZeroQuantity(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Key devuelve la clave compuesta del bucket.
func (s *Stock) Key() StockKey {
	return StockKey{ItemID: s.ItemID, LocationID: s.LocationID, LotID: s.LotID, SerialNumber: s.SerialNumber}
}

// IsNew indica si el bucket no existe aún en el almacenamiento.
func (s *Stock) IsNew() bool { return s.Version == 0 }

// Increase suma qty a la cantidad disponible.
func (s *Stock) Increase(qty valueobject.Quantity, now time.Time) {
	s.QuantityAvailable = s.QuantityAvailable.Add(qty)
	s.UpdatedAt = now
}

// Decrease resta qty; si el resultado fuera negativo devuelve ErrInvariantViolation sin modificar el bucket.
func (s *Stock) Decrease(qty valueobject.Quantity, now time.Time) error {
	next, err := s.QuantityAvailable.Sub(qty)
	if err != nil {
		return fmt.Errorf("%w: bucket %s disponible %s, decremento %s",
			domain.ErrInvariantViolation, s.Key(), s.QuantityAvailable, qty)
	}
	s.QuantityAvailable = next
	s.UpdatedAt = now
	return nil
}

// SetAvailable fija la cantidad disponible y devuelve la anterior.
func (s *Stock) SetAvailable(qty valueobject.Quantity, now time.Time) valueobject.Quantity {
	prev := s.QuantityAvailable
	s.QuantityAvailable = qty
	s.UpdatedAt = now
	return prev
}
