package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// InventoryMove is the append-only ledger of stock changes. Quantity is signed:
// receipts are positive, deliveries negative.
type InventoryMove struct {
	ID          uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID                 `gorm:"column:product_id;type:uuid;not null;index"`
	WarehouseID uuid.UUID                 `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Quantity    decimal.Decimal           `gorm:"column:quantity;type:numeric(18,4);not null"`
	Reason      enums.InventoryMoveReason `gorm:"column:reason;type:text;not null"`
	ReferenceID *uuid.UUID                `gorm:"column:reference_id;type:uuid"`
	Notes       *string                   `gorm:"column:notes"`
	CreatedBy   *uuid.UUID                `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
