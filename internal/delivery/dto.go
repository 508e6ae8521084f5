package delivery

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput ships a quantity against one sales order line.
type LineInput struct {
	SalesOrderItemID uuid.UUID       `json:"sales_order_item_id" validate:"required"`
	Quantity         decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateInput opens a delivery note for a confirmed sales order.
type CreateInput struct {
	SalesOrderID uuid.UUID   `json:"sales_order_id" validate:"required"`
	Lines        []LineInput `json:"lines" validate:"required,min=1,dive"`
	Notes        *string     `json:"notes,omitempty"`
	ActorID      *uuid.UUID  `json:"-"`
}
