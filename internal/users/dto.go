package users

import (
	"time"

	"github.com/google/uuid"
)

// CreateRoleInput registers a named permission set.
type CreateRoleInput struct {
	Name        string   `json:"name" validate:"required,max=64"`
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

// UpdateRoleInput carries the mutable role fields.
type UpdateRoleInput struct {
	Description *string  `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,min=1,dive,required"`
}

// CreateUserInput registers a backoffice login.
type CreateUserInput struct {
	Email    string    `json:"email" validate:"required,email"`
	FullName string    `json:"full_name" validate:"required,max=255"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Password string    `json:"password" validate:"required,min=8"`
	RoleID   uuid.UUID `json:"role_id" validate:"required"`
}

// UpdateUserInput carries the mutable user fields.
type UpdateUserInput struct {
	FullName *string    `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string    `json:"phone,omitempty" validate:"omitempty,max=32"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// ListFilters describe the inputs supported by the user list.
type ListFilters struct {
	Query      string
	ActiveOnly bool
}

// Summary is the list-view projection of a user.
type Summary struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	RoleName    string     `json:"role_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// List wraps the paginated users plus the next page cursor.
type List struct {
	Users      []Summary `json:"users"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
