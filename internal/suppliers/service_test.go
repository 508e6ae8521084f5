package suppliers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
)

type stubRepo struct {
	createFn   func(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	updateFn   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	return s.createFn(ctx, supplier)
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRepo) FindByCode(ctx context.Context, code string) (*models.Supplier, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	return &List{}, nil
}

func TestCreateTrimsAndActivates(t *testing.T) {
	var captured *models.Supplier
	repo := &stubRepo{
		createFn: func(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
			captured = supplier
			return supplier, nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Code: " NCC01 ", Name: " Công ty Minh Phát "})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "NCC01", captured.Code)
	assert.Equal(t, "Công ty Minh Phát", captured.Name)
	assert.True(t, captured.IsActive)
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Code: "", Name: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateInput{Code: "NCC01", Name: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetMapsRecordNotFound(t *testing.T) {
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeactivateWritesFlag(t *testing.T) {
	id := uuid.New()
	var captured map[string]any
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, findID uuid.UUID) (*models.Supplier, error) {
			return &models.Supplier{ID: findID, Code: "NCC01", Name: "Công ty Minh Phát"}, nil
		},
		updateFn: func(ctx context.Context, updateID uuid.UUID, updates map[string]any) error {
			captured = updates
			return nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	assert.Equal(t, map[string]any{"is_active": false}, captured)
}
