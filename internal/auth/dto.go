package auth

import "time"

// LoginInput carries the credentials posted to the login endpoint.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the expired access token plus the refresh token.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput carries the access token whose session should be revoked.
type LogoutInput struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// TokenPair is the credential set returned after login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
