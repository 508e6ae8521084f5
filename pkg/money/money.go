package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount signals that a raw value could not be parsed as a decimal
// amount. Callers rendering user input should fall back to zero instead of
// propagating it.
var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a raw string into an exact decimal amount.
func Parse(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// ParseOrZero converts a raw string into a decimal amount, returning zero for
// anything unparseable.
func ParseOrZero(value string) decimal.Decimal {
	d, err := Parse(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Display converts an exact amount into a float for rendering. The result is
// lossy and must never feed back into arithmetic or persistence.
func Display(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Percent returns value * pct/100 without intermediate float conversion.
func Percent(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(decimal.NewFromInt(100))
}
