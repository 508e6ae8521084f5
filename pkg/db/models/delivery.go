package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// Delivery represents a shipment fulfilling part or all of a sales order.
type Delivery struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code         string               `gorm:"column:code;not null;uniqueIndex"`
	SalesOrderID uuid.UUID            `gorm:"column:sales_order_id;type:uuid;not null;index"`
	WarehouseID  uuid.UUID            `gorm:"column:warehouse_id;type:uuid;not null"`
	Status       enums.DeliveryStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	ShippedAt    *time.Time           `gorm:"column:shipped_at"`
	DeliveredAt  *time.Time           `gorm:"column:delivered_at"`
	Notes        *string              `gorm:"column:notes"`
	CreatedBy    *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	Items        []DeliveryItem       `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
