package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMComponent ties a component product and its required quantity to a BOM.
type BOMComponent struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BOMID              uuid.UUID       `gorm:"column:bom_id;type:uuid;not null;index"`
	ComponentProductID uuid.UUID       `gorm:"column:component_product_id;type:uuid;not null"`
	Quantity           decimal.Decimal `gorm:"column:quantity;type:numeric(18,4);not null"`
	ScrapPercent       decimal.Decimal `gorm:"column:scrap_percent;type:numeric(7,4);not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
