package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var defaultTag = language.MustParse("vi-VN")

// Formatter renders amounts as localized currency strings. Output is
// display-only: the backend persists and compares exact decimals, never the
// formatted text.
type Formatter struct {
	unit  currency.Unit
	scale int
}

// NewFormatter builds a formatter for the given ISO 4217 currency code.
func NewFormatter(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	scale, _ := currency.Cash.Rounding(unit)
	return &Formatter{unit: unit, scale: scale}, nil
}

var vndUnit = currency.MustParseISO("VND")

var vndFormatter = func() *Formatter {
	scale, _ := currency.Cash.Rounding(vndUnit)
	return &Formatter{unit: vndUnit, scale: scale}
}()

// VND renders the amount in the house currency with Vietnamese conventions.
func VND(amount decimal.Decimal) string {
	return vndFormatter.Format(amount, "vi-VN")
}

// Format renders the amount with the grouping and decimal conventions of the
// requested locale. Unknown locales fall back to vi-VN.
func (f *Formatter) Format(amount decimal.Decimal, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = defaultTag
	}
	p := message.NewPrinter(tag)
	return p.Sprintf("%v %v", number.Decimal(Display(amount), number.Scale(f.scale)), f.unit)
}
