package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItem captures the product snapshot within a purchase order.
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Unit        string          `gorm:"column:unit;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(18,4);not null"`
	ReceivedQty decimal.Decimal `gorm:"column:received_qty;type:numeric(18,4);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(18,4);not null;default:0"`
	Notes       *string         `gorm:"column:notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
