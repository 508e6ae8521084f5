package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem tracks on-hand and reserved quantity per product and warehouse.
type InventoryItem struct {
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"column:warehouse_id;type:uuid;primaryKey"`
	OnHandQty   decimal.Decimal `gorm:"column:on_hand_qty;type:numeric(18,4);not null;default:0"`
	ReservedQty decimal.Decimal `gorm:"column:reserved_qty;type:numeric(18,4);not null;default:0"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
