package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// LineInput is one product row submitted with a sales order draft. Zero
// UnitPrice or TaxRate falls back to the catalog values.
type LineInput struct {
	ProductID       uuid.UUID        `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// PreviewInput recomputes totals for an order draft without persisting it.
type PreviewInput struct {
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Lines       []LineInput     `json:"details" validate:"required,min=1,dive"`
}

// CreateInput carries a sales order submission. GrandTotal is the client's
// advisory figure; the server recomputes and its numbers win.
type CreateInput struct {
	CustomerID  uuid.UUID        `json:"customer_id" validate:"required"`
	WarehouseID uuid.UUID        `json:"warehouse_id" validate:"required"`
	OrderDate   time.Time        `json:"order_date" validate:"required"`
	ShippingFee decimal.Decimal  `json:"shipping_fee"`
	Notes       *string          `json:"notes,omitempty"`
	Lines       []LineInput      `json:"details" validate:"required,min=1,dive"`
	GrandTotal  *decimal.Decimal `json:"total_amount,omitempty"`
	ActorID     *uuid.UUID       `json:"-"`
}

// ListFilters describe the inputs supported by the sales order list.
type ListFilters struct {
	CustomerID uuid.UUID
	Status     enums.SalesOrderStatus
}

// Summary is the list-view projection of a sales order.
type Summary struct {
	ID         uuid.UUID              `json:"id"`
	Code       string                 `json:"code"`
	CustomerID uuid.UUID              `json:"customer_id"`
	Status     enums.SalesOrderStatus `json:"status"`
	OrderDate  time.Time              `json:"order_date"`
	GrandTotal decimal.Decimal        `json:"total_amount"`
	CreatedAt  time.Time              `json:"created_at"`
}

// List wraps the paginated sales orders plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
