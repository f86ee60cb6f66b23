package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del maestro (SKU). El motor de movimientos lo consume en solo lectura.
type Item struct {
	ID             string
	SKU            string // único, normalizado en mayúsculas
	Name           string
	Description    string
	UnitOfMeasure  string
	IsActive       bool
	RequiresLot    bool
	RequiresSerial bool
	ShelfLifeDays  int
	Price          *decimal.Decimal
	Barcodes       []string // cada código de barras pertenece a un solo artículo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasBarcode indica si el código pertenece al artículo.
func (i *Item) HasBarcode(code string) bool {
	for _, b := range i.Barcodes {
		if b == code {
			return true
		}
	}
	return false
}

// PriceOrZero devuelve el precio o cero cuando no está definido.
func (i *Item) PriceOrZero() decimal.Decimal {
	if i.Price == nil {
		return decimal.Zero
	}
	return *i.Price
}
