package middleware

import (
	"context"

	pkgauth "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/auth"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
	ctxClaims contextKey = "access_claims"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func ClaimsFromContext(ctx context.Context) *pkgauth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*pkgauth.AccessTokenClaims); ok {
		return v
	}
	return nil
}

// WithClaims seeds the context the way the auth middleware does. Intended for tests
// and internal tooling.
func WithClaims(ctx context.Context, claims *pkgauth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if claims == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
	ctx = context.WithValue(ctx, ctxRole, claims.Role)
	return context.WithValue(ctx, ctxClaims, claims)
}
