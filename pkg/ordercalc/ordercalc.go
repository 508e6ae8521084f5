// Package ordercalc reduces order line items into totals. It is the single
// authority for subtotal/discount/tax arithmetic: purchase orders, sales
// orders, and their preview endpoints all run the same reduction so a draft
// preview always matches what submission persists.
//
// All arithmetic is exact decimal. Discounts apply before tax, and tax always
// applies to the post-discount amount.
package ordercalc

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/money"
)

// ErrInvalidLineItem signals a contract violation: a negative quantity or unit
// price reached the aggregator. Form validation is expected to reject these
// upstream; the aggregator fails loudly instead of clamping.
var ErrInvalidLineItem = errors.New("invalid line item")

// ErrInvalidOptions signals that the aggregation options are unusable, such as
// a missing or unknown discount mode.
var ErrInvalidOptions = errors.New("invalid aggregation options")

// LineItem is one product row within an order draft.
type LineItem struct {
	ProductID       uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxRate         decimal.Decimal
	Notes           string
}

// Options selects the tax/discount policy for one aggregation run. The mode is
// fixed per order type; per-line and order-level figures are never mixed
// within a single calculation.
type Options struct {
	DiscountMode             enums.DiscountMode
	OrderLevelTaxRate        decimal.Decimal
	OrderLevelDiscountAmount decimal.Decimal
	ShippingFee              decimal.Decimal
}

// PurchaseOrderOptions returns the policy used by purchase orders: one tax
// rate negotiated with the supplier, applied to the whole order.
func PurchaseOrderOptions(taxRate decimal.Decimal) Options {
	return Options{
		DiscountMode:      enums.DiscountModeOrderLevel,
		OrderLevelTaxRate: taxRate,
	}
}

// SalesOrderOptions returns the policy used by sales orders: per-line discount
// and tax, plus a flat shipping fee. Sales orders that negotiate one flat
// discount instead of per-line percents build order-level Options directly.
func SalesOrderOptions(shippingFee decimal.Decimal) Options {
	return Options{
		DiscountMode: enums.DiscountModePerLine,
		ShippingFee:  shippingFee,
	}
}

// Totals is the derived aggregate of an order draft. It is recomputed from the
// lines on every call and never stored incrementally.
type Totals struct {
	TotalQuantity  decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Aggregate reduces the lines into totals under the given options.
//
// An empty slice yields all-zero totals. Lines with zero quantity contribute
// nothing. Negative quantity or unit price returns ErrInvalidLineItem.
// Percentages outside [0,100] are not clamped here; callers validate them
// before invoking the aggregator so bugs surface instead of being masked.
func Aggregate(details []LineItem, opts Options) (Totals, error) {
	if !opts.DiscountMode.IsValid() {
		return Totals{}, fmt.Errorf("%w: discount mode %q", ErrInvalidOptions, opts.DiscountMode)
	}

	totals := Totals{
		TotalQuantity:  decimal.Zero,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxableAmount:  decimal.Zero,
		TaxAmount:      decimal.Zero,
		GrandTotal:     decimal.Zero,
	}
	if len(details) == 0 {
		return totals, nil
	}

	perLine := opts.DiscountMode == enums.DiscountModePerLine

	for i, line := range details {
		if line.Quantity.IsNegative() {
			return Totals{}, fmt.Errorf("%w: line %d has negative quantity %s", ErrInvalidLineItem, i, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, fmt.Errorf("%w: line %d has negative unit price %s", ErrInvalidLineItem, i, line.UnitPrice)
		}
		if line.Quantity.IsZero() {
			continue
		}

		lineSubtotal := line.Quantity.Mul(line.UnitPrice)
		totals.TotalQuantity = totals.TotalQuantity.Add(line.Quantity)
		totals.Subtotal = totals.Subtotal.Add(lineSubtotal)

		if perLine {
			lineDiscount := money.Percent(lineSubtotal, line.DiscountPercent)
			lineTaxable := lineSubtotal.Sub(lineDiscount)
			totals.DiscountAmount = totals.DiscountAmount.Add(lineDiscount)
			totals.TaxableAmount = totals.TaxableAmount.Add(lineTaxable)
			totals.TaxAmount = totals.TaxAmount.Add(money.Percent(lineTaxable, line.TaxRate))
		}
	}

	if !perLine {
		totals.DiscountAmount = opts.OrderLevelDiscountAmount
		totals.TaxableAmount = totals.Subtotal.Sub(totals.DiscountAmount)
		totals.TaxAmount = money.Percent(totals.TaxableAmount, opts.OrderLevelTaxRate)
	}

	totals.GrandTotal = totals.TaxableAmount.Add(totals.TaxAmount).Add(opts.ShippingFee)
	return totals, nil
}
