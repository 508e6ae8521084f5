package customers

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput carries the fields accepted when registering a customer.
type CreateInput struct {
	Code    string  `json:"code" validate:"required,max=32"`
	Name    string  `json:"name" validate:"required,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
	TaxCode *string `json:"tax_code,omitempty" validate:"omitempty,max=32"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateInput carries the mutable customer fields. Nil pointers are left untouched.
type UpdateInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  *string `json:"address,omitempty"`
	TaxCode  *string `json:"tax_code,omitempty" validate:"omitempty,max=32"`
	Notes    *string `json:"notes,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ListFilters describe the inputs supported by the customer list.
type ListFilters struct {
	Query      string
	ActiveOnly bool
}

// Summary is the list-view projection of a customer.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// List wraps the paginated customers plus the next page cursor.
type List struct {
	Customers  []Summary `json:"customers"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
