package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a buyer account in the sales ledger.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string    `gorm:"column:code;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Phone     *string   `gorm:"column:phone"`
	Email     *string   `gorm:"column:email"`
	Address   *string   `gorm:"column:address"`
	TaxCode   *string   `gorm:"column:tax_code"`
	Notes     *string   `gorm:"column:notes"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
