package enums

import "fmt"

// SalesOrderStatus tracks the lifecycle of a sales order.
type SalesOrderStatus string

const (
	SalesOrderStatusDraft              SalesOrderStatus = "draft"
	SalesOrderStatusConfirmed          SalesOrderStatus = "confirmed"
	SalesOrderStatusPartiallyDelivered SalesOrderStatus = "partially_delivered"
	SalesOrderStatusCompleted          SalesOrderStatus = "completed"
	SalesOrderStatusCancelled          SalesOrderStatus = "cancelled"
)

var validSalesOrderStatuses = []SalesOrderStatus{
	SalesOrderStatusDraft,
	SalesOrderStatusConfirmed,
	SalesOrderStatusPartiallyDelivered,
	SalesOrderStatusCompleted,
	SalesOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s SalesOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SalesOrderStatus.
func (s SalesOrderStatus) IsValid() bool {
	for _, candidate := range validSalesOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to target.
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusDraft:
		return target == SalesOrderStatusConfirmed || target == SalesOrderStatusCancelled
	case SalesOrderStatusConfirmed:
		return target == SalesOrderStatusPartiallyDelivered ||
			target == SalesOrderStatusCompleted ||
			target == SalesOrderStatusCancelled
	case SalesOrderStatusPartiallyDelivered:
		return target == SalesOrderStatusPartiallyDelivered || target == SalesOrderStatusCompleted
	}
	return false
}

// CanDeliver reports whether a delivery may be issued against this status.
func (s SalesOrderStatus) CanDeliver() bool {
	return s == SalesOrderStatusConfirmed || s == SalesOrderStatusPartiallyDelivered
}

// ParseSalesOrderStatus converts raw input into a SalesOrderStatus.
func ParseSalesOrderStatus(value string) (SalesOrderStatus, error) {
	for _, candidate := range validSalesOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales order status %q", value)
}
