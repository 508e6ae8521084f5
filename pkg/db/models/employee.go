package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee represents a payroll subject.
type Employee struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code       string          `gorm:"column:code;not null;uniqueIndex"`
	FullName   string          `gorm:"column:full_name;not null"`
	Position   *string         `gorm:"column:position"`
	Department *string         `gorm:"column:department"`
	Phone      *string         `gorm:"column:phone"`
	Email      *string         `gorm:"column:email"`
	BaseSalary decimal.Decimal `gorm:"column:base_salary;type:numeric(18,4);not null;default:0"`
	Allowance  decimal.Decimal `gorm:"column:allowance;type:numeric(18,4);not null;default:0"`
	HiredAt    *time.Time      `gorm:"column:hired_at"`
	IsActive   bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
