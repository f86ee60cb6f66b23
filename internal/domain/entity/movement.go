package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

const (
	MovementTypeReceipt    MovementType = "Receipt"    // recepción
	MovementTypePutaway    MovementType = "Putaway"    // almacenamiento
	MovementTypePick       MovementType = "Pick"       // despacho
	MovementTypeAdjustment MovementType = "Adjustment" // ajuste
)

// ParseMovementType valida el nombre de un tipo de movimiento (sin distinguir mayúsculas).
func ParseMovementType(s string) (MovementType, bool) {
	for _, t := range []MovementType{MovementTypeReceipt, MovementTypePutaway, MovementTypePick, MovementTypeAdjustment} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Movement es una fila inmutable del libro. Quantity es la cantidad movida en Receipt/Putaway/Pick
// y el delta con signo en Adjustment. Las referencias vacías significan "sin valor".
type Movement struct {
	ID              string
	Type            MovementType
	ItemID          string
	FromLocationID  string
	ToLocationID    string
	LotID           string
	SerialNumber    string
	Quantity        decimal.Decimal
	UserID          string
	ReferenceNumber string
	Notes           string
	Timestamp       time.Time
}

// MovementLine es un movimiento con la identidad de sus referencias resuelta para reportes.
// Los punteros nil indican que la referencia ya no existe.
type MovementLine struct {
	Movement
	ItemSKU          *string
	ItemName         *string
	FromLocationCode *string
	ToLocationCode   *string
	LotNumber        *string
}

// StockLine es un bucket con artículo, ubicación y lote resueltos (consultas de stock).
type StockLine struct {
	Stock
	ItemSKU       string
	ItemName      string
	UnitOfMeasure string
	Price         *decimal.Decimal
	LocationCode  string
	LocationName  string
	LotNumber     string
	LotExpiry     *time.Time
}
