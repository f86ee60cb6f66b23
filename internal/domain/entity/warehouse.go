package entity

import "time"

// Warehouse representa la bodega dueña de las ubicaciones (el sistema opera una sola bodega).
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
