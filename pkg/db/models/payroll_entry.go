package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// PayrollEntry records one employee's pay for a month. Period uses YYYY-MM.
type PayrollEntry struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmployeeID    uuid.UUID           `gorm:"column:employee_id;type:uuid;not null;index:idx_payroll_employee_period,unique"`
	Period        string              `gorm:"column:period;not null;index:idx_payroll_employee_period,unique"`
	BaseSalary    decimal.Decimal     `gorm:"column:base_salary;type:numeric(18,4);not null;default:0"`
	Allowance     decimal.Decimal     `gorm:"column:allowance;type:numeric(18,4);not null;default:0"`
	OvertimeHours decimal.Decimal     `gorm:"column:overtime_hours;type:numeric(18,4);not null;default:0"`
	OvertimeRate  decimal.Decimal     `gorm:"column:overtime_rate;type:numeric(18,4);not null;default:0"`
	Deductions    decimal.Decimal     `gorm:"column:deductions;type:numeric(18,4);not null;default:0"`
	Advance       decimal.Decimal     `gorm:"column:advance;type:numeric(18,4);not null;default:0"`
	GrossPay      decimal.Decimal     `gorm:"column:gross_pay;type:numeric(18,4);not null;default:0"`
	NetPay        decimal.Decimal     `gorm:"column:net_pay;type:numeric(18,4);not null;default:0"`
	Status        enums.PayrollStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	ApprovedBy    *uuid.UUID          `gorm:"column:approved_by;type:uuid"`
	PaidAt        *time.Time          `gorm:"column:paid_at"`
	Notes         *string             `gorm:"column:notes"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
