package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryItem records the quantity shipped for one sales order line.
type DeliveryItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryID       uuid.UUID       `gorm:"column:delivery_id;type:uuid;not null;index"`
	SalesOrderItemID uuid.UUID       `gorm:"column:sales_order_item_id;type:uuid;not null"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:numeric(18,4);not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
