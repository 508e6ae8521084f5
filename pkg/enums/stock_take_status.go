package enums

import "fmt"

// StockTakeStatus tracks a warehouse stocktake from counting to reconciliation.
type StockTakeStatus string

const (
	StockTakeStatusDraft      StockTakeStatus = "draft"
	StockTakeStatusReconciled StockTakeStatus = "reconciled"
	StockTakeStatusCancelled  StockTakeStatus = "cancelled"
)

var validStockTakeStatuses = []StockTakeStatus{
	StockTakeStatusDraft,
	StockTakeStatusReconciled,
	StockTakeStatusCancelled,
}

// String implements fmt.Stringer.
func (s StockTakeStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockTakeStatus.
func (s StockTakeStatus) IsValid() bool {
	for _, candidate := range validStockTakeStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockTakeStatus converts raw input into a StockTakeStatus.
func ParseStockTakeStatus(value string) (StockTakeStatus, error) {
	for _, candidate := range validStockTakeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock take status %q", value)
}
