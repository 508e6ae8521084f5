package enums

import "fmt"

// InventoryMoveReason labels why a stock level changed.
type InventoryMoveReason string

const (
	InventoryMoveReasonPurchaseReceipt InventoryMoveReason = "purchase_receipt"
	InventoryMoveReasonSalesDelivery   InventoryMoveReason = "sales_delivery"
	InventoryMoveReasonStockTake       InventoryMoveReason = "stock_take"
	InventoryMoveReasonManual          InventoryMoveReason = "manual"
)

var validInventoryMoveReasons = []InventoryMoveReason{
	InventoryMoveReasonPurchaseReceipt,
	InventoryMoveReasonSalesDelivery,
	InventoryMoveReasonStockTake,
	InventoryMoveReasonManual,
}

// String implements fmt.Stringer.
func (i InventoryMoveReason) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InventoryMoveReason.
func (i InventoryMoveReason) IsValid() bool {
	for _, candidate := range validInventoryMoveReasons {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInventoryMoveReason converts raw input into an InventoryMoveReason.
func ParseInventoryMoveReason(value string) (InventoryMoveReason, error) {
	for _, candidate := range validInventoryMoveReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory move reason %q", value)
}
