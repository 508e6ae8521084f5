package suppliers

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput carries the fields accepted when registering a supplier.
type CreateInput struct {
	Code          string  `json:"code" validate:"required,max=32"`
	Name          string  `json:"name" validate:"required,max=255"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	TaxCode       *string `json:"tax_code,omitempty" validate:"omitempty,max=32"`
	PaymentTerms  *string `json:"payment_terms,omitempty"`
}

// UpdateInput carries the mutable supplier fields. Nil pointers are left untouched.
type UpdateInput struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=255"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	TaxCode       *string `json:"tax_code,omitempty" validate:"omitempty,max=32"`
	PaymentTerms  *string `json:"payment_terms,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// ListFilters describe the inputs supported by the supplier list.
type ListFilters struct {
	Query      string
	ActiveOnly bool
}

// Summary is the list-view projection of a supplier.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// List wraps the paginated suppliers plus the next page cursor.
type List struct {
	Suppliers  []Summary `json:"suppliers"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
