package entity

import "time"

// Lot es un lote de un artículo. Se crea de forma perezosa al recibir y nunca se elimina.
type Lot struct {
	ID               string
	Number           string // único por artículo, en mayúsculas
	ItemID           string
	ExpiryDate       *time.Time
	ManufacturedDate *time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpdateDates reemplaza solo las fechas suministradas. Devuelve true si algo cambió.
func (l *Lot) UpdateDates(expiry, manufactured *time.Time, now time.Time) bool {
	changed := false
	if expiry != nil && (l.ExpiryDate == nil || !l.ExpiryDate.Equal(*expiry)) {
		e := *expiry
		l.ExpiryDate = &e
		changed = true
	}
	if manufactured != nil && (l.ManufacturedDate == nil || !l.ManufacturedDate.Equal(*manufactured)) {
		m := *manufactured
		l.ManufacturedDate = &m
		changed = true
	}
	if changed {
		l.UpdatedAt = now
	}
	return changed
}

// IsExpired indica si el lote venció en la fecha dada.
func (l *Lot) IsExpired(at time.Time) bool {
	return l.ExpiryDate != nil && l.ExpiryDate.Before(at)
}
