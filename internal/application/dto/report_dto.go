package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReportRequest filtros del reporte. Fechas nil toman el rango por defecto
// (hoy - 30 días hasta mañana). Los filtros de texto son subcadenas sin distinguir mayúsculas.
type MovementReportRequest struct {
	FromDate     *time.Time
	ToDate       *time.Time
	ItemSKU      string
	LocationCode string
	MovementType string
	UserID       string
}

// MovementReportRow fila plana del reporte.
type MovementReportRow struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	ItemSKU          string          `json:"item_sku"`
	ItemName         string          `json:"item_name"`
	FromLocationCode *string         `json:"from_location_code"`
	ToLocationCode   *string         `json:"to_location_code"`
	Quantity         decimal.Decimal `json:"quantity"`
	LotNumber        *string         `json:"lot_number"`
	SerialNumber     string          `json:"serial_number,omitempty"`
	UserID           string          `json:"user_id"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// MovementReportResponse respuesta de GET /api/reports/movements.
type MovementReportResponse struct {
	From  time.Time           `json:"from"`
	To    time.Time           `json:"to"`
	Count int                 `json:"count"`
	Rows  []MovementReportRow `json:"rows"`
}
