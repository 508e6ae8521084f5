package enums

import "fmt"

// DiscountMode selects how tax and discounts apply to an order's lines.
// Purchase orders negotiate a single order-level tax rate with the supplier;
// sales orders carry per-line promotional discounts and tax categories. The
// mode is fixed per order type and never mixed within one calculation.
type DiscountMode string

const (
	DiscountModePerLine    DiscountMode = "per_line"
	DiscountModeOrderLevel DiscountMode = "order_level"
)

var validDiscountModes = []DiscountMode{
	DiscountModePerLine,
	DiscountModeOrderLevel,
}

// String implements fmt.Stringer.
func (d DiscountMode) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountMode.
func (d DiscountMode) IsValid() bool {
	for _, candidate := range validDiscountModes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountMode converts raw input into a DiscountMode.
func ParseDiscountMode(value string) (DiscountMode, error) {
	for _, candidate := range validDiscountModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount mode %q", value)
}
