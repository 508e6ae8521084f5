package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor we purchase stock from.
type Supplier struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string    `gorm:"column:code;not null;uniqueIndex"`
	Name          string    `gorm:"column:name;not null"`
	ContactPerson *string   `gorm:"column:contact_person"`
	Phone         *string   `gorm:"column:phone"`
	Email         *string   `gorm:"column:email"`
	Address       *string   `gorm:"column:address"`
	TaxCode       *string   `gorm:"column:tax_code"`
	PaymentTerms  *string   `gorm:"column:payment_terms"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
