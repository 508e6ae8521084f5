package bom

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
)

type stubRepo struct {
	createFn       func(ctx context.Context, bom *models.BOM) (*models.BOM, error)
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.BOM, error)
	findActiveFn   func(ctx context.Context, productID uuid.UUID) (*models.BOM, error)
	updateFn       func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	maxVersion     int
	updatedBOMIDs  []uuid.UUID
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, bom *models.BOM) (*models.BOM, error) {
	if s.createFn == nil {
		return bom, nil
	}
	return s.createFn(ctx, bom)
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRepo) FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error) {
	if s.findActiveFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.findActiveFn(ctx, productID)
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updatedBOMIDs = append(s.updatedBOMIDs, id)
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, updates)
}

func (s *stubRepo) MaxVersionForProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	return s.maxVersion, nil
}

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return s.products, nil
}

func d(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestCreateBumpsVersionAndSupersedes(t *testing.T) {
	productID := uuid.New()
	previous := &models.BOM{ID: uuid.New(), ProductID: productID, Version: 2, IsActive: true}

	var captured *models.BOM
	repo := &stubRepo{
		maxVersion: 2,
		findActiveFn: func(ctx context.Context, pid uuid.UUID) (*models.BOM, error) {
			return previous, nil
		},
		createFn: func(ctx context.Context, bom *models.BOM) (*models.BOM, error) {
			captured = bom
			return bom, nil
		},
	}
	svc, err := NewService(repo, &stubCatalog{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		ProductID: productID,
		Name:      "Bàn gỗ v3",
		Components: []ComponentInput{
			{ComponentProductID: uuid.New(), Quantity: d("4")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, captured.Version)
	assert.True(t, captured.IsActive)
	assert.Equal(t, []uuid.UUID{previous.ID}, repo.updatedBOMIDs)
}

func TestCreateRejectsSelfReference(t *testing.T) {
	productID := uuid.New()
	svc, err := NewService(&stubRepo{}, &stubCatalog{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		ProductID: productID,
		Name:      "x",
		Components: []ComponentInput{
			{ComponentProductID: productID, Quantity: d("1")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsDuplicateComponent(t *testing.T) {
	component := uuid.New()
	svc, err := NewService(&stubRepo{}, &stubCatalog{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{
		ProductID: uuid.New(),
		Name:      "x",
		Components: []ComponentInput{
			{ComponentProductID: component, Quantity: d("1")},
			{ComponentProductID: component, Quantity: d("2")},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCostRollupAppliesScrap(t *testing.T) {
	legID := uuid.New()
	topID := uuid.New()
	bomID := uuid.New()
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
			return &models.BOM{
				ID:        id,
				ProductID: uuid.New(),
				Components: []models.BOMComponent{
					{ComponentProductID: legID, Quantity: d("4"), ScrapPercent: d("10")},
					{ComponentProductID: topID, Quantity: d("1")},
				},
			}, nil
		},
	}
	catalog := &stubCatalog{products: []models.Product{
		{ID: legID, CostPrice: d("25000")},
		{ID: topID, CostPrice: d("150000")},
	}}
	svc, err := NewService(repo, catalog)
	require.NoError(t, err)

	rollup, err := svc.CostRollup(context.Background(), bomID)
	require.NoError(t, err)
	require.Len(t, rollup.Lines, 2)

	// 4 * 1.10 * 25000 = 110000, plus 150000
	assert.True(t, rollup.Lines[0].EffectiveQty.Equal(d("4.4")), "effective %s", rollup.Lines[0].EffectiveQty)
	assert.True(t, rollup.Lines[0].TotalCost.Equal(d("110000")))
	assert.True(t, rollup.TotalCost.Equal(d("260000")), "total %s", rollup.TotalCost)
}

func TestCostRollupFailsOnMissingComponent(t *testing.T) {
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
			return &models.BOM{
				ID: id,
				Components: []models.BOMComponent{
					{ComponentProductID: uuid.New(), Quantity: d("1")},
				},
			}, nil
		},
	}
	svc, err := NewService(repo, &stubCatalog{})
	require.NoError(t, err)

	_, err = svc.CostRollup(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestExplodeScalesByBuildQuantity(t *testing.T) {
	legID := uuid.New()
	repo := &stubRepo{
		findActiveFn: func(ctx context.Context, productID uuid.UUID) (*models.BOM, error) {
			return &models.BOM{
				ID:        uuid.New(),
				ProductID: productID,
				Components: []models.BOMComponent{
					{ComponentProductID: legID, Quantity: d("4"), ScrapPercent: d("10")},
				},
			}, nil
		},
	}
	svc, err := NewService(repo, &stubCatalog{})
	require.NoError(t, err)

	requirements, err := svc.Explode(context.Background(), uuid.New(), d("5"))
	require.NoError(t, err)
	require.Len(t, requirements, 1)
	assert.True(t, requirements[0].RequiredQty.Equal(d("22")), "required %s", requirements[0].RequiredQty)
}

func TestExplodeRejectsNonPositiveQuantity(t *testing.T) {
	svc, err := NewService(&stubRepo{}, &stubCatalog{})
	require.NoError(t, err)

	_, err = svc.Explode(context.Background(), uuid.New(), decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
