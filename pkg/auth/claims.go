package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	FullName    string
	Role        string
	Permissions []string
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the token grants the named permission.
// The wildcard "*" grants everything.
func (c *AccessTokenClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == "*" || p == permission {
			return true
		}
	}
	return false
}
