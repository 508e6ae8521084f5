package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// LineInput is one product row submitted with a purchase order draft.
// DiscountPercent and TaxRate are accepted because the client sends the same
// line shape for both order forms; purchase orders tax at the order level, so
// both fields are ignored here.
type LineInput struct {
	ProductID       uuid.UUID       `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Notes           *string         `json:"notes,omitempty"`
}

// CreateInput carries a purchase order submission. GrandTotal is the client's
// advisory figure; the server recomputes and its numbers win.
type CreateInput struct {
	SupplierID     uuid.UUID        `json:"supplier_id" validate:"required"`
	WarehouseID    uuid.UUID        `json:"warehouse_id" validate:"required"`
	OrderDate      time.Time        `json:"order_date" validate:"required"`
	ExpectedDate   *time.Time       `json:"expected_date,omitempty"`
	TaxRate        decimal.Decimal  `json:"tax_rate"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	ShippingFee    decimal.Decimal  `json:"shipping_fee"`
	Notes          *string          `json:"notes,omitempty"`
	Lines          []LineInput      `json:"details" validate:"required,min=1,dive"`
	GrandTotal     *decimal.Decimal `json:"total_amount,omitempty"`
	ActorID        *uuid.UUID       `json:"-"`
}

// ReceiptLine reports goods received against one order line.
type ReceiptLine struct {
	ItemID   uuid.UUID       `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// ReceiveInput records a full or partial goods receipt.
type ReceiveInput struct {
	Lines   []ReceiptLine `json:"lines" validate:"required,min=1,dive"`
	Notes   *string       `json:"notes,omitempty"`
	ActorID *uuid.UUID    `json:"-"`
}

// ListFilters describe the inputs supported by the purchase order list.
type ListFilters struct {
	SupplierID uuid.UUID
	Status     enums.PurchaseOrderStatus
}

// Summary is the list-view projection of a purchase order.
type Summary struct {
	ID         uuid.UUID                 `json:"id"`
	Code       string                    `json:"code"`
	SupplierID uuid.UUID                 `json:"supplier_id"`
	Status     enums.PurchaseOrderStatus `json:"status"`
	OrderDate  time.Time                 `json:"order_date"`
	GrandTotal decimal.Decimal           `json:"total_amount"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// List wraps the paginated purchase orders plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
