package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location es una posición física dentro de la bodega. Las banderas de capacidad
// determinan qué movimientos pueden tenerla como destino u origen.
type Location struct {
	ID               string
	Code             string // único
	Name             string
	WarehouseID      string
	ParentLocationID string // jerarquía opcional; el motor no la usa
	IsPickable       bool
	IsReceivable     bool
	IsActive         bool
	Capacity         decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
