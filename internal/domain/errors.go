package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInactive               = errors.New("recurso inactivo")
	ErrCapabilityMismatch     = errors.New("la ubicación no admite la operación")
	ErrMissingAttribute       = errors.New("falta un atributo requerido")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("el stock fue modificado por otra operación")
	// ErrInvariantViolation indica un error de programación o una carrera: nunca se confirma la transacción.
	ErrInvariantViolation = errors.New("violación de invariante de inventario")
)

// Códigos estables de RuleError (se exponen tal cual en la API HTTP).
const (
	CodeItemNotFound          = "ITEM_NOT_FOUND"
	CodeItemInactive          = "ITEM_INACTIVE"
	CodeLocationNotFound      = "LOCATION_NOT_FOUND"
	CodeLocationInactive      = "LOCATION_INACTIVE"
	CodeLocationNotReceivable = "LOCATION_NOT_RECEIVABLE"
	CodeLocationNotPickable   = "LOCATION_NOT_PICKABLE"
	CodeLotNotFound           = "LOT_NOT_FOUND"
	CodeStockNotFound         = "STOCK_NOT_FOUND"
	CodeLotRequired           = "LOT_REQUIRED"
	CodeSerialRequired        = "SERIAL_REQUIRED"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeValidation            = "VALIDATION"
	CodeForbidden             = "FORBIDDEN"
)

// RuleError es el rechazo esperado de una regla de negocio. Lleva un mensaje legible para el usuario
// y la categoría (Kind) con la que se compara vía errors.Is.
type RuleError struct {
	Kind    error
	Code    string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound) y similares.
func (e *RuleError) Unwrap() error { return e.Kind }

// NewRuleError construye un RuleError con mensaje formateado.
func NewRuleError(kind error, code, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError devuelve el RuleError contenido en err, si existe.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
