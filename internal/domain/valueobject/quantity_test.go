package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain/valueobject"
)

func TestNewQuantity_NegativaFalla(t *testing.T) {
	_, err := valueobject.NewQuantity(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, valueobject.ErrNegativeQuantity)

	_, err = valueobject.NewQuantityFromString("-0.0001")
	assert.ErrorIs(t, err, valueobject.ErrNegativeQuantity)
}

func TestNewQuantity_CeroYDecimalesValidos(t *testing.T) {
	q, err := valueobject.NewQuantityFromString("0")
	require.NoError(t, err)
	assert.True(t, q.IsZero())

	q, err = valueobject.NewQuantityFromString("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", q.String())
	assert.True(t, q.IsPositive())
}

func TestNewQuantityFromString_Invalida(t *testing.T) {
	_, err := valueobject.NewQuantityFromString("doce")
	assert.Error(t, err)
}

func TestQuantity_Aritmetica(t *testing.T) {
	a := valueobject.MustQuantity(100)
	b := valueobject.MustQuantity(40)

	assert.Equal(t, "140", a.Add(b).String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "60", diff.String())

	_, err = b.Sub(a)
	assert.ErrorIs(t, err, valueobject.ErrNegativeQuantity, "restar por debajo de cero debe fallar")

	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, a.Equal(valueobject.MustQuantity(100)))
	assert.Equal(t, -1, b.Cmp(a))
	assert.True(t, b.Delta(a).Equal(decimal.NewFromInt(-60)))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WIDGET-001", valueobject.NormalizeSKU("  widget-001 "))
	assert.Equal(t, "LOTE-Ñ1", valueobject.NormalizeLotNumber("lote-ñ1"))
	assert.Equal(t, "sn-abc", valueobject.NormalizeSerial(" sn-abc "))
}

func TestNewBarcode(t *testing.T) {
	_, err := valueobject.NewBarcode("   ")
	assert.ErrorIs(t, err, valueobject.ErrEmptyBarcode)

	b, err := valueobject.NewBarcode(" 7701234567890 ")
	require.NoError(t, err)
	assert.Equal(t, "7701234567890", b.String())
}

func TestFitsScale(t *testing.T) {
	for in, want := range map[string]bool{
		"1":        true,
		"0.0001":   true,
		"1.50000":  true,
		"0.00001":  false,
		"3.14159":  false,
		"-0.00005": false,
	} {
		assert.Equal(t, want, valueobject.FitsScale(decimal.RequireFromString(in)), in)
	}
}
