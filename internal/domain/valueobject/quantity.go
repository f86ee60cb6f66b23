package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeQuantity se devuelve al construir una cantidad negativa.
var ErrNegativeQuantity = errors.New("la cantidad no puede ser negativa")

// MaxScale decimales que persiste el almacenamiento (NUMERIC(18,4)).
const MaxScale = 4

// FitsScale indica si d se representa sin pérdida con MaxScale decimales.
// Los ceros a la derecha no cuentan: 1.50000 cabe, 0.00001 no.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MaxScale))
}

// Quantity es una cantidad de inventario no negativa e inmutable.
// Todas las operaciones devuelven un valor nuevo.
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity devuelve la cantidad cero.
func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

// NewQuantity valida que value no sea negativo.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, fmt.Errorf("%w: %s", ErrNegativeQuantity, value.String())
	}
	return Quantity{value: value}, nil
}

// NewQuantityFromInt construye una cantidad desde un entero.
func NewQuantityFromInt(value int64) (Quantity, error) {
	return NewQuantity(decimal.NewFromInt(value))
}

// NewQuantityFromString construye una cantidad desde su representación decimal.
func NewQuantityFromString(value string) (Quantity, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{}, fmt.Errorf("cantidad inválida %q: %w", value, err)
	}
	return NewQuantity(d)
}

// MustQuantity construye una cantidad y hace panic si es negativa. Solo para constantes y tests.
func MustQuantity(value int64) Quantity {
	q, err := NewQuantityFromInt(value)
	if err != nil {
		panic(err)
	}
	return q
}

// Decimal devuelve el valor subyacente.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// IsZero indica si la cantidad es cero.
func (q Quantity) IsZero() bool { return q.value.IsZero() }

// IsPositive indica si la cantidad es mayor que cero.
func (q Quantity) IsPositive() bool { return q.value.IsPositive() }

// Add suma dos cantidades.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Sub resta other; falla si el resultado sería negativo.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	return NewQuantity(q.value.Sub(other.value))
}

// Cmp compara: -1 si q < other, 0 si son iguales, +1 si q > other.
func (q Quantity) Cmp(other Quantity) int { return q.value.Cmp(other.value) }

func (q Quantity) LessThan(other Quantity) bool    { return q.value.LessThan(other.value) }
func (q Quantity) GreaterThan(other Quantity) bool { return q.value.GreaterThan(other.value) }
func (q Quantity) Equal(other Quantity) bool       { return q.value.Equal(other.value) }

// Delta devuelve q - previous con signo (usado por los ajustes).
func (q Quantity) Delta(previous Quantity) decimal.Decimal {
	return q.value.Sub(previous.value)
}

func (q Quantity) String() string { return q.value.String() }
