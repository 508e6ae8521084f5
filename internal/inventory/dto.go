package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// CreateWarehouseInput carries the fields accepted when registering a warehouse.
type CreateWarehouseInput struct {
	Code    string  `json:"code" validate:"required,max=32"`
	Name    string  `json:"name" validate:"required,max=255"`
	Address *string `json:"address,omitempty"`
}

// UpdateWarehouseInput carries the mutable warehouse fields.
type UpdateWarehouseInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AdjustInput describes a manual stock adjustment. Quantity is signed.
type AdjustInput struct {
	ProductID   uuid.UUID       `json:"product_id" validate:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
	ActorID     *uuid.UUID      `json:"-"`
}

// MovementInput records one ledger entry tied to a source document.
type MovementInput struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    decimal.Decimal
	Reason      enums.InventoryMoveReason
	ReferenceID *uuid.UUID
	Notes       *string
	ActorID     *uuid.UUID
}

// Level is the stock position of one product in one warehouse.
type Level struct {
	ProductID    uuid.UUID       `json:"product_id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	OnHandQty    decimal.Decimal `json:"on_hand_qty"`
	ReservedQty  decimal.Decimal `json:"reserved_qty"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateStockTakeInput opens a counting session for a warehouse.
type CreateStockTakeInput struct {
	Code        string      `json:"code" validate:"required,max=32"`
	WarehouseID uuid.UUID   `json:"warehouse_id" validate:"required"`
	ProductIDs  []uuid.UUID `json:"product_ids,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	ActorID     *uuid.UUID  `json:"-"`
}

// LineCount is a counted quantity reported for one product in a stocktake.
type LineCount struct {
	ProductID  uuid.UUID       `json:"product_id" validate:"required"`
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// VarianceLine reports the difference between counted and expected quantity.
type VarianceLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ExpectedQty decimal.Decimal `json:"expected_qty"`
	CountedQty  decimal.Decimal `json:"counted_qty"`
	Variance    decimal.Decimal `json:"variance"`
}
