package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/auth"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/auth/session"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/security"
)

// userDirectory is the slice of the users repository the auth flow needs.
type userDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// sessionManager mirrors the refresh-session operations of session.Manager.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	Logout(ctx context.Context, input LogoutInput) error
}

type service struct {
	users    userDirectory
	sessions sessionManager
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an auth service with the required dependencies.
func NewService(users userDirectory, sessions sessionManager, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

var errBadCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")

func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, errBadCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errBadCredentials
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if !user.IsActive {
		return nil, errBadCredentials
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		s.logg.Warn(ctx, "login rejected: wrong password")
		return nil, errBadCredentials
	}

	accessID := session.NewAccessID()
	pair, err := s.mintPair(ctx, user, accessID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	pair.RefreshToken = refreshToken

	now := s.now().UTC()
	if err := s.users.UpdateUser(ctx, user.ID, map[string]any{"last_login_at": &now}); err != nil {
		s.logg.Error(ctx, "record last login", err)
	}
	return pair, nil
}

// Refresh rotates the refresh session and issues a fresh token pair. The
// access token may be expired; its signature and jti are still required.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwtCfg, input.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := s.sessions.Rotate(ctx, claims.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	// Reload the user so permission changes take effect on the next token.
	user, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if !user.IsActive {
		if revokeErr := s.sessions.Revoke(ctx, newAccessID); revokeErr != nil {
			s.logg.Error(ctx, "revoke session for inactive user", revokeErr)
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account is deactivated")
	}

	pair, err := s.mintPair(ctx, user, newAccessID)
	if err != nil {
		return nil, err
	}
	pair.RefreshToken = newRefreshToken
	return pair, nil
}

func (s *service) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwtCfg, input.AccessToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) mintPair(ctx context.Context, user *models.User, accessID string) (*TokenPair, error) {
	if user.Role == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user has no role loaded")
	}
	now := s.now()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		UserID:      user.ID,
		FullName:    user.FullName,
		Role:        user.Role.Name,
		Permissions: []string(user.Role.Permissions),
		JTI:         accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPair{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute).UTC(),
	}, nil
}
