package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// SalesOrder represents an outbound order for a customer. Discounts and taxes
// are applied per line; the stored totals are always the server-computed ones.
type SalesOrder struct {
	ID             uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string                 `gorm:"column:code;not null;uniqueIndex"`
	CustomerID     uuid.UUID              `gorm:"column:customer_id;type:uuid;not null;index"`
	WarehouseID    uuid.UUID              `gorm:"column:warehouse_id;type:uuid;not null"`
	Status         enums.SalesOrderStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	OrderDate      time.Time              `gorm:"column:order_date;not null"`
	ShippingFee    decimal.Decimal        `gorm:"column:shipping_fee;type:numeric(18,4);not null;default:0"`
	TotalQuantity  decimal.Decimal        `gorm:"column:total_quantity;type:numeric(18,4);not null;default:0"`
	Subtotal       decimal.Decimal        `gorm:"column:subtotal;type:numeric(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal        `gorm:"column:discount_amount;type:numeric(18,4);not null;default:0"`
	TaxableAmount  decimal.Decimal        `gorm:"column:taxable_amount;type:numeric(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal        `gorm:"column:tax_amount;type:numeric(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal        `gorm:"column:grand_total;type:numeric(18,4);not null;default:0"`
	TotalsMismatch bool                   `gorm:"column:totals_mismatch;not null;default:false"`
	Notes          *string                `gorm:"column:notes"`
	CreatedBy      *uuid.UUID             `gorm:"column:created_by;type:uuid"`
	Items          []SalesOrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
