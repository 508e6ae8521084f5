package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields accepted when registering a product.
type CreateInput struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=128"`
	Unit        string          `json:"unit" validate:"required,max=32"`
	Barcode     *string         `json:"barcode,omitempty" validate:"omitempty,max=64"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateInput carries the mutable product fields. Nil pointers are left untouched.
type UpdateInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=128"`
	Unit        *string          `json:"unit,omitempty" validate:"omitempty,max=32"`
	Barcode     *string          `json:"barcode,omitempty" validate:"omitempty,max=64"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ListFilters describe the inputs supported by the product list.
type ListFilters struct {
	Query      string
	Category   string
	ActiveOnly bool
}

// Summary is the list-view projection of a product.
type Summary struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  *string         `json:"category,omitempty"`
	Unit      string          `json:"unit"`
	SalePrice decimal.Decimal `json:"sale_price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// List wraps the paginated products plus the next page cursor.
type List struct {
	Products   []Summary `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
