package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/security"
)

const tempPasswordLength = 12

// Service defines user and role management operations.
type Service interface {
	CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)

	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error)
	ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
	ResetPassword(ctx context.Context, id uuid.UUID) (string, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a users service with the required dependencies.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) CreateRole(ctx context.Context, input CreateRoleInput) (*models.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role name required")
	}
	permissions, err := normalizePermissions(input.Permissions)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        name,
		Description: input.Description,
		Permissions: permissions,
	}
	created, err := s.repo.CreateRole(ctx, role)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "role name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create role")
	}
	return created, nil
}

func (s *service) GetRole(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role, err := s.repo.FindRoleByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find role")
	}
	return role, nil
}

func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*models.Role, error) {
	if _, err := s.GetRole(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.Permissions != nil {
		permissions, err := normalizePermissions(input.Permissions)
		if err != nil {
			return nil, err
		}
		updates["permissions"] = permissions
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateRole(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return s.GetRole(ctx, id)
}

func (s *service) ListRoles(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	return roles, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if input.RoleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role required")
	}
	if _, err := s.GetRole(ctx, input.RoleID); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Phone:        input.Phone,
		RoleID:       input.RoleID,
		IsActive:     true,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return created, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return user, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if fullName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name cannot be empty")
		}
		updates["full_name"] = fullName
	}
	if input.Phone != nil {
		updates["phone"] = input.Phone
	}
	if input.RoleID != nil {
		if _, err := s.GetRole(ctx, *input.RoleID); err != nil {
			return nil, err
		}
		updates["role_id"] = *input.RoleID
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return s.GetUser(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.ListUsers(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return list, nil
}

// ResetPassword replaces the user's password with a generated temporary one
// and returns the plaintext for out-of-band delivery.
func (s *service) ResetPassword(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return "", err
	}
	plaintext, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate password")
	}
	hash, err := security.HashPassword(plaintext, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdateUser(ctx, id, map[string]any{"password_hash": hash}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}
	return plaintext, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateUser(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate user")
	}
	return nil
}

func normalizePermissions(raw []string) (pq.StringArray, error) {
	if len(raw) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one permission required")
	}
	seen := make(map[string]struct{}, len(raw))
	permissions := make(pq.StringArray, 0, len(raw))
	for _, entry := range raw {
		permission := strings.TrimSpace(entry)
		if permission == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "permission cannot be empty")
		}
		if permission != "*" && !strings.Contains(permission, ":") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("permission %q must be resource:action", permission))
		}
		if _, ok := seen[permission]; ok {
			continue
		}
		seen[permission] = struct{}{}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}
