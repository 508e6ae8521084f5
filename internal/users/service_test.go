package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/config"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/security"
)

type stubRepo struct {
	createRoleFn   func(ctx context.Context, role *models.Role) (*models.Role, error)
	findRoleFn     func(ctx context.Context, id uuid.UUID) (*models.Role, error)
	updateRoleFn   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	listRolesFn    func(ctx context.Context) ([]models.Role, error)
	createUserFn   func(ctx context.Context, user *models.User) (*models.User, error)
	findUserFn     func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByEmailFn  func(ctx context.Context, email string) (*models.User, error)
	updateUserFn   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	listUsersFn    func(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateRole(ctx context.Context, role *models.Role) (*models.Role, error) {
	if s.createRoleFn == nil {
		role.ID = uuid.New()
		return role, nil
	}
	return s.createRoleFn(ctx, role)
}

func (s *stubRepo) FindRoleByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	if s.findRoleFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.findRoleFn(ctx, id)
}

func (s *stubRepo) UpdateRole(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateRoleFn == nil {
		return nil
	}
	return s.updateRoleFn(ctx, id, updates)
}

func (s *stubRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	if s.listRolesFn == nil {
		return nil, nil
	}
	return s.listRolesFn(ctx)
}

func (s *stubRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createUserFn == nil {
		user.ID = uuid.New()
		return user, nil
	}
	return s.createUserFn(ctx, user)
}

func (s *stubRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.findUserFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.findUserFn(ctx, id)
}

func (s *stubRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findByEmailFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.findByEmailFn(ctx, email)
}

func (s *stubRepo) UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateUserFn == nil {
		return nil
	}
	return s.updateUserFn(ctx, id, updates)
}

func (s *stubRepo) ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	if s.listUsersFn == nil {
		return &List{}, nil
	}
	return s.listUsersFn(ctx, params, filters)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func salesRole() *models.Role {
	return &models.Role{
		ID:          uuid.New(),
		Name:        "sales",
		Permissions: []string{"sales_orders:write", "customers:read"},
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	role := salesRole()
	var created *models.User
	repo := &stubRepo{
		findRoleFn: func(ctx context.Context, id uuid.UUID) (*models.Role, error) {
			return role, nil
		},
		createUserFn: func(ctx context.Context, user *models.User) (*models.User, error) {
			created = user
			user.ID = uuid.New()
			return user, nil
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    " Thu.Ha@Example.VN ",
		FullName: "Nguyễn Thu Hà",
		Password: "mat-khau-bi-mat",
		RoleID:   role.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "thu.ha@example.vn", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "mat-khau-bi-mat", created.PasswordHash)
	ok, err := security.VerifyPassword("mat-khau-bi-mat", created.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc, err := NewService(&stubRepo{}, testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "a@example.vn",
		FullName: "A",
		Password: "ngan",
		RoleID:   uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateUserRequiresExistingRole(t *testing.T) {
	svc, err := NewService(&stubRepo{}, testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "a@example.vn",
		FullName: "A",
		Password: "mat-khau-bi-mat",
		RoleID:   uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateRoleNormalizesPermissions(t *testing.T) {
	var created *models.Role
	repo := &stubRepo{
		createRoleFn: func(ctx context.Context, role *models.Role) (*models.Role, error) {
			created = role
			role.ID = uuid.New()
			return role, nil
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.CreateRole(context.Background(), CreateRoleInput{
		Name:        " kho ",
		Permissions: []string{" inventory:write ", "inventory:write", "inventory:read"},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "kho", created.Name)
	assert.Equal(t, []string{"inventory:write", "inventory:read"}, []string(created.Permissions))
}

func TestCreateRoleRejectsMalformedPermission(t *testing.T) {
	svc, err := NewService(&stubRepo{}, testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.CreateRole(context.Background(), CreateRoleInput{
		Name:        "kho",
		Permissions: []string{"inventory"},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Contains(t, err.Error(), "resource:action")
}

func TestResetPasswordStoresNewHash(t *testing.T) {
	userID := uuid.New()
	var updates map[string]any
	repo := &stubRepo{
		findUserFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, Email: "a@example.vn", IsActive: true}, nil
		},
		updateUserFn: func(ctx context.Context, id uuid.UUID, u map[string]any) error {
			updates = u
			return nil
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	plaintext, err := svc.ResetPassword(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, plaintext, 12)

	require.Contains(t, updates, "password_hash")
	ok, err := security.VerifyPassword(plaintext, updates["password_hash"].(string))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeactivateWritesFlag(t *testing.T) {
	userID := uuid.New()
	var updates map[string]any
	repo := &stubRepo{
		findUserFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: userID, IsActive: true}, nil
		},
		updateUserFn: func(ctx context.Context, id uuid.UUID, u map[string]any) error {
			updates = u
			return nil
		},
	}
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), userID))
	assert.Equal(t, map[string]any{"is_active": false}, updates)
}
