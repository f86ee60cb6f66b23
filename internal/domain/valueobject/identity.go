package valueobject

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyBarcode se devuelve al construir un código de barras vacío.
var ErrEmptyBarcode = errors.New("el código de barras no puede estar vacío")

// NormalizeCode recorta espacios y pasa a mayúsculas (SKU, número de lote, código de ubicación).
// cases.Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func NormalizeCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// NormalizeSKU normaliza un SKU.
func NormalizeSKU(sku string) string { return NormalizeCode(sku) }

// NormalizeLotNumber normaliza un número de lote (único por artículo).
func NormalizeLotNumber(number string) string { return NormalizeCode(number) }

// NormalizeSerial recorta espacios; los números de serie conservan mayúsculas/minúsculas.
func NormalizeSerial(serial string) string { return strings.TrimSpace(serial) }

// Barcode identifica exactamente un artículo.
type Barcode struct {
	value string
}

// NewBarcode valida y construye un código de barras.
func NewBarcode(value string) (Barcode, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Barcode{}, ErrEmptyBarcode
	}
	return Barcode{value: v}, nil
}

func (b Barcode) String() string { return b.value }
