package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockTakeLine compares the recorded quantity with the counted one.
type StockTakeLine struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StockTakeID uuid.UUID       `gorm:"column:stock_take_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ExpectedQty decimal.Decimal `gorm:"column:expected_qty;type:numeric(18,4);not null;default:0"`
	CountedQty  decimal.Decimal `gorm:"column:counted_qty;type:numeric(18,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
