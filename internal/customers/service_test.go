package customers

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
	createFn   func(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	updateFn   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	listFn     func(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	return s.createFn(ctx, customer)
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRepo) FindByCode(ctx context.Context, code string) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	return s.listFn(ctx, params, filters)
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	repo := &stubRepo{
		createFn: func(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
			customer.ID = uuid.New()
			return customer, nil
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateInput{Code: "  KH001 ", Name: " Cong ty A "})
	require.NoError(t, err)
	assert.Equal(t, "KH001", created.Code)
	assert.Equal(t, "Cong ty A", created.Name)
	assert.True(t, created.IsActive)
}

func TestCreateRequiresCodeAndName(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Code: "", Name: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateInput{Code: "KH", Name: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetMapsNotFound(t *testing.T) {
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateRejectsEmptyName(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	empty := "   "
	_, err = svc.Update(context.Background(), uuid.New(), UpdateInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeactivateMarksInactive(t *testing.T) {
	id := uuid.New()
	var captured map[string]any
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, findID uuid.UUID) (*models.Customer, error) {
			return &models.Customer{ID: findID, Code: "KH001", Name: "A", IsActive: true}, nil
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
