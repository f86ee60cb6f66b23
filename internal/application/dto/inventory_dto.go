package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveItemRequest body para POST /api/receiving. ItemSKU acepta también un código de barras.
type ReceiveItemRequest struct {
	ItemSKU          string          `json:"item_sku" validate:"required,max=64"`
	LocationCode     string          `json:"location_code" validate:"required,max=64"`
	Quantity         decimal.Decimal `json:"quantity" validate:"gt=0"`
	LotNumber        string          `json:"lot_number,omitempty" validate:"max=64"`
	SerialNumber     string          `json:"serial_number,omitempty" validate:"max=128"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	ManufacturedDate *time.Time      `json:"manufactured_date,omitempty"`
	ReferenceNumber  string          `json:"reference_number,omitempty" validate:"max=128"`
	Notes            string          `json:"notes,omitempty" validate:"max=1000"`
}

// ReceiptResult resultado de una recepción.
type ReceiptResult struct {
	MovementID   string          `json:"movement_id"`
	ItemSKU      string          `json:"item_sku"`
	LocationCode string          `json:"location_code"`
	Quantity     decimal.Decimal `json:"quantity"`
	LotNumber    string          `json:"lot_number,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// PutawayRequest body para POST /api/putaway.
type PutawayRequest struct {
	ItemSKU          string          `json:"item_sku" validate:"required,max=64"`
	FromLocationCode string          `json:"from_location_code" validate:"required,max=64"`
	ToLocationCode   string          `json:"to_location_code" validate:"required,max=64"`
	Quantity         decimal.Decimal `json:"quantity" validate:"gt=0"`
	LotNumber        string          `json:"lot_number,omitempty" validate:"max=64"`
	SerialNumber     string          `json:"serial_number,omitempty" validate:"max=128"`
	Notes            string          `json:"notes,omitempty" validate:"max=1000"`
}

// PutawayResult resultado de un almacenamiento.
type PutawayResult struct {
	MovementID       string          `json:"movement_id"`
	ItemSKU          string          `json:"item_sku"`
	FromLocationCode string          `json:"from_location_code"`
	ToLocationCode   string          `json:"to_location_code"`
	Quantity         decimal.Decimal `json:"quantity"`
	LotNumber        string          `json:"lot_number,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// PickRequest body para POST /api/picking.
type PickRequest struct {
	ItemSKU          string          `json:"item_sku" validate:"required,max=64"`
	FromLocationCode string          `json:"from_location_code" validate:"required,max=64"`
	Quantity         decimal.Decimal `json:"quantity" validate:"gt=0"`
	OrderNumber      string          `json:"order_number,omitempty" validate:"max=128"`
	LotNumber        string          `json:"lot_number,omitempty" validate:"max=64"`
	SerialNumber     string          `json:"serial_number,omitempty" validate:"max=128"`
	Notes            string          `json:"notes,omitempty" validate:"max=1000"`
}

// PickResult resultado de un despacho.
type PickResult struct {
	MovementID       string          `json:"movement_id"`
	ItemSKU          string          `json:"item_sku"`
	FromLocationCode string          `json:"from_location_code"`
	Quantity         decimal.Decimal `json:"quantity"`
	OrderNumber      string          `json:"order_number,omitempty"`
	LotNumber        string          `json:"lot_number,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments. NewQuantity es absoluta.
type AdjustStockRequest struct {
	ItemSKU      string          `json:"item_sku" validate:"required,max=64"`
	LocationCode string          `json:"location_code" validate:"required,max=64"`
	NewQuantity  decimal.Decimal `json:"new_quantity" validate:"min=0"`
	Reason       string          `json:"reason" validate:"required,max=500"`
	LotNumber    string          `json:"lot_number,omitempty" validate:"max=64"`
	SerialNumber string          `json:"serial_number,omitempty" validate:"max=128"`
}

// AdjustmentResult resultado de un ajuste. Delta = NewQuantity - PreviousQuantity.
type AdjustmentResult struct {
	MovementID       string          `json:"movement_id"`
	ItemSKU          string          `json:"item_sku"`
	LocationCode     string          `json:"location_code"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	Delta            decimal.Decimal `json:"delta"`
	Timestamp        time.Time       `json:"timestamp"`
}

// StockLineDTO una fila de GET /api/inventory/stock.
type StockLineDTO struct {
	ItemID        string          `json:"item_id"`
	ItemSKU       string          `json:"item_sku"`
	ItemName      string          `json:"item_name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	LocationCode  string          `json:"location_code"`
	LocationName  string          `json:"location_name"`
	LotNumber     string          `json:"lot_number,omitempty"`
	LotExpiry     *time.Time      `json:"lot_expiry,omitempty"`
	SerialNumber  string          `json:"serial_number,omitempty"`
	Available     decimal.Decimal `json:"quantity_available"`
	Reserved      decimal.Decimal `json:"quantity_reserved"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemStockSummaryDTO totales por artículo.
type ItemStockSummaryDTO struct {
	ItemID        string          `json:"item_id"`
	ItemSKU       string          `json:"item_sku"`
	ItemName      string          `json:"item_name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Locations     int             `json:"locations"`
}

// StockSummaryResponse respuesta de GET /api/inventory/stock/summary.
type StockSummaryResponse struct {
	Items      []ItemStockSummaryDTO `json:"items"`
	TotalValue decimal.Decimal       `json:"total_value"`
}

// LotDTO lote para búsquedas y autocompletado.
type LotDTO struct {
	ID               string     `json:"id"`
	Number           string     `json:"number"`
	ItemID           string     `json:"item_id"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	ManufacturedDate *time.Time `json:"manufactured_date,omitempty"`
	IsExpired        bool       `json:"is_expired"`
}
