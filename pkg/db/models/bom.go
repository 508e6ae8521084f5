package models

import (
	"time"

	"github.com/google/uuid"
)

// BOM is a single-level bill of materials for an assembled product.
type BOM struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index"`
	Name       string         `gorm:"column:name;not null"`
	Version    int            `gorm:"column:version;not null;default:1"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	Notes      *string        `gorm:"column:notes"`
	Components []BOMComponent `gorm:"foreignKey:BOMID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
