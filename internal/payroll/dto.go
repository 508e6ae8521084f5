package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEmployeeInput registers an employee.
type CreateEmployeeInput struct {
	Code       string          `json:"code" validate:"required,max=32"`
	FullName   string          `json:"full_name" validate:"required,max=255"`
	Position   *string         `json:"position,omitempty"`
	Department *string         `json:"department,omitempty"`
	Phone      *string         `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email      *string         `json:"email,omitempty" validate:"omitempty,email"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Allowance  decimal.Decimal `json:"allowance"`
	HiredAt    *time.Time      `json:"hired_at,omitempty"`
}

// UpdateEmployeeInput carries the mutable employee fields.
type UpdateEmployeeInput struct {
	FullName   *string          `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Position   *string          `json:"position,omitempty"`
	Department *string          `json:"department,omitempty"`
	Phone      *string          `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email      *string          `json:"email,omitempty" validate:"omitempty,email"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Allowance  *decimal.Decimal `json:"allowance,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
}

// GenerateInput computes one payroll entry for an employee and period.
type GenerateInput struct {
	EmployeeID    uuid.UUID       `json:"employee_id" validate:"required"`
	Period        string          `json:"period" validate:"required"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	OvertimeRate  decimal.Decimal `json:"overtime_rate"`
	Deductions    decimal.Decimal `json:"deductions"`
	Advance       decimal.Decimal `json:"advance"`
	Notes         *string         `json:"notes,omitempty"`
}
