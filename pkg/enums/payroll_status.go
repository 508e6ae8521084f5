package enums

import "fmt"

// PayrollStatus tracks a payroll entry from computation to payment.
type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

var validPayrollStatuses = []PayrollStatus{
	PayrollStatusDraft,
	PayrollStatusApproved,
	PayrollStatusPaid,
}

// String implements fmt.Stringer.
func (p PayrollStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PayrollStatus.
func (p PayrollStatus) IsValid() bool {
	for _, candidate := range validPayrollStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePayrollStatus converts raw input into a PayrollStatus.
func ParsePayrollStatus(value string) (PayrollStatus, error) {
	for _, candidate := range validPayrollStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payroll status %q", value)
}
