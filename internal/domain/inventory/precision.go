package inventory

import "github.com/shopspring/decimal"

// Cantidades y costos se persisten como NUMERIC(18,4): hasta 4 decimales y 14 dígitos enteros.
const (
	MaxScale  = 4
	maxDigits = 14
)

var maxMagnitude = decimal.New(1, maxDigits)

// FitsStorage indica si d se guarda sin redondeo en cualquiera de los drivers.
func FitsStorage(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MaxScale)) && d.Abs().LessThan(maxMagnitude)
}
