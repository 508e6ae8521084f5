package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// PurchaseOrder represents an inbound order placed with a supplier. Tax and
// discount are applied at the order level.
type PurchaseOrder struct {
	ID             uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string                    `gorm:"column:code;not null;uniqueIndex"`
	SupplierID     uuid.UUID                 `gorm:"column:supplier_id;type:uuid;not null;index"`
	WarehouseID    uuid.UUID                 `gorm:"column:warehouse_id;type:uuid;not null"`
	Status         enums.PurchaseOrderStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	OrderDate      time.Time                 `gorm:"column:order_date;not null"`
	ExpectedDate   *time.Time                `gorm:"column:expected_date"`
	TaxRate        decimal.Decimal           `gorm:"column:tax_rate;type:numeric(7,4);not null;default:0"`
	DiscountAmount decimal.Decimal           `gorm:"column:discount_amount;type:numeric(18,4);not null;default:0"`
	ShippingFee    decimal.Decimal           `gorm:"column:shipping_fee;type:numeric(18,4);not null;default:0"`
	TotalQuantity  decimal.Decimal           `gorm:"column:total_quantity;type:numeric(18,4);not null;default:0"`
	Subtotal       decimal.Decimal           `gorm:"column:subtotal;type:numeric(18,4);not null;default:0"`
	TaxableAmount  decimal.Decimal           `gorm:"column:taxable_amount;type:numeric(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal           `gorm:"column:tax_amount;type:numeric(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal           `gorm:"column:grand_total;type:numeric(18,4);not null;default:0"`
	Notes          *string                   `gorm:"column:notes"`
	CreatedBy      *uuid.UUID                `gorm:"column:created_by;type:uuid"`
	Items          []PurchaseOrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
