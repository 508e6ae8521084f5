package enums

import "fmt"

// PurchaseOrderStatus tracks the lifecycle of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "draft"
	PurchaseOrderStatusConfirmed         PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusCompleted         PurchaseOrderStatus = "completed"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

var validPurchaseOrderStatuses = []PurchaseOrderStatus{
	PurchaseOrderStatusDraft,
	PurchaseOrderStatusConfirmed,
	PurchaseOrderStatusPartiallyReceived,
	PurchaseOrderStatusCompleted,
	PurchaseOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (p PurchaseOrderStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseOrderStatus.
func (p PurchaseOrderStatus) IsValid() bool {
	for _, candidate := range validPurchaseOrderStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to target.
func (p PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch p {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusCompleted ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusCompleted
	}
	// completed and cancelled are terminal
	return false
}

// CanReceive reports whether goods may be received against this status.
func (p PurchaseOrderStatus) CanReceive() bool {
	return p == PurchaseOrderStatusConfirmed || p == PurchaseOrderStatusPartiallyReceived
}

// ParsePurchaseOrderStatus converts raw input into a PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	for _, candidate := range validPurchaseOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
