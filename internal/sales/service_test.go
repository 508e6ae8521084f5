package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
	"github.com/rs/zerolog"
)

type stubRepo struct {
	createFn     func(ctx context.Context, order *models.SalesOrder) (*models.SalesOrder, error)
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	updateFn     func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	updateItemFn func(ctx context.Context, itemID uuid.UUID, updates map[string]any) error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.SalesOrder) (*models.SalesOrder, error) {
	if s.createFn == nil {
		return order, nil
	}
	return s.createFn(ctx, order)
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, updates)
}

func (s *stubRepo) UpdateItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error {
	if s.updateItemFn == nil {
		return nil
	}
	return s.updateItemFn(ctx, itemID, updates)
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	return &List{}, nil
}

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return s.products, nil
}

type reservation struct {
	productID uuid.UUID
	quantity  decimal.Decimal
}

type stubStock struct {
	reserved   []reservation
	released   []reservation
	reserveErr error
}

func (s *stubStock) Reserve(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	s.reserved = append(s.reserved, reservation{productID: productID, quantity: quantity})
	return nil
}

func (s *stubStock) Release(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	s.released = append(s.released, reservation{productID: productID, quantity: quantity})
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel})
}

func d(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newTestService(t *testing.T, repo Repository, catalog productCatalog, stock stockReserver) Service {
	t.Helper()
	svc, err := NewService(stubTxRunner{}, repo, catalog, stock, nil, testLogger())
	require.NoError(t, err)
	return svc
}

func TestPreviewComputesPerLineTotals(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{
		{ID: productID, Name: "Máy khoan", Unit: "cái", SalePrice: d("100000"), TaxRate: d("5")},
	}}
	svc := newTestService(t, &stubRepo{}, catalog, &stubStock{})

	totals, err := svc.Preview(context.Background(), PreviewInput{
		Lines: []LineInput{
			{ProductID: productID, Quantity: d("2"), DiscountPercent: d("10")},
		},
	})
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(d("200000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(d("20000")), "discount %s", totals.DiscountAmount)
	assert.True(t, totals.TaxableAmount.Equal(d("180000")), "taxable %s", totals.TaxableAmount)
	assert.True(t, totals.TaxAmount.Equal(d("9000")), "tax %s", totals.TaxAmount)
	assert.True(t, totals.GrandTotal.Equal(d("189000")), "total %s", totals.GrandTotal)
}

func TestPreviewAddsShippingFee(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{
		{ID: productID, SalePrice: d("100000"), TaxRate: d("5")},
	}}
	svc := newTestService(t, &stubRepo{}, catalog, &stubStock{})

	totals, err := svc.Preview(context.Background(), PreviewInput{
		ShippingFee: d("30000"),
		Lines: []LineInput{
			{ProductID: productID, Quantity: d("2"), DiscountPercent: d("10")},
		},
	})
	require.NoError(t, err)
	assert.True(t, totals.GrandTotal.Equal(d("219000")), "total %s", totals.GrandTotal)
}

func TestCreateFlagsClientTotalMismatch(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{
		{ID: productID, Name: "Máy khoan", Unit: "cái", SalePrice: d("100000")},
	}}
	var captured *models.SalesOrder
	repo := &stubRepo{
		createFn: func(ctx context.Context, order *models.SalesOrder) (*models.SalesOrder, error) {
			captured = order
			return order, nil
		},
	}
	svc := newTestService(t, repo, catalog, &stubStock{})

	wrong := d("123456")
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID:  uuid.New(),
		WarehouseID: uuid.New(),
		OrderDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:       []LineInput{{ProductID: productID, Quantity: d("2")}},
		GrandTotal:  &wrong,
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.True(t, captured.TotalsMismatch)
	assert.True(t, captured.GrandTotal.Equal(d("200000")), "server total wins, got %s", captured.GrandTotal)
	assert.Contains(t, captured.Code, "SO-20250801-")
}

func TestCreateMatchingTotalIsClean(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{
		{ID: productID, SalePrice: d("100000")},
	}}
	var captured *models.SalesOrder
	repo := &stubRepo{
		createFn: func(ctx context.Context, order *models.SalesOrder) (*models.SalesOrder, error) {
			captured = order
			return order, nil
		},
	}
	svc := newTestService(t, repo, catalog, &stubStock{})

	exact := d("200000")
	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID:  uuid.New(),
		WarehouseID: uuid.New(),
		OrderDate:   time.Now(),
		Lines:       []LineInput{{ProductID: productID, Quantity: d("2")}},
		GrandTotal:  &exact,
	})
	require.NoError(t, err)
	assert.False(t, captured.TotalsMismatch)
}

func TestCreateRejectsDiscountOutOfRange(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{{ID: productID, SalePrice: d("100000")}}}
	svc := newTestService(t, &stubRepo{}, catalog, &stubStock{})

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerID:  uuid.New(),
		WarehouseID: uuid.New(),
		OrderDate:   time.Now(),
		Lines:       []LineInput{{ProductID: productID, Quantity: d("1"), DiscountPercent: d("101")}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestPreviewRejectsTaxRateOutOfRange(t *testing.T) {
	productID := uuid.New()
	catalog := &stubCatalog{products: []models.Product{{ID: productID, SalePrice: d("100000")}}}
	svc := newTestService(t, &stubRepo{}, catalog, &stubStock{})

	rate := d("150")
	_, err := svc.Preview(context.Background(), PreviewInput{
		Lines: []LineInput{{ProductID: productID, Quantity: d("1"), TaxRate: &rate}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func confirmedOrder(warehouseID uuid.UUID, items ...models.SalesOrderItem) *models.SalesOrder {
	return &models.SalesOrder{
		ID:          uuid.New(),
		Code:        "SO-20250801-TEST01",
		WarehouseID: warehouseID,
		Status:      enums.SalesOrderStatusConfirmed,
		Items:       items,
	}
}

func TestConfirmReservesEveryLine(t *testing.T) {
	order := confirmedOrder(uuid.New(),
		models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("3")},
		models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("1")},
	)
	order.Status = enums.SalesOrderStatusDraft
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
			return order, nil
		},
	}
	stock := &stubStock{}
	svc := newTestService(t, repo, &stubCatalog{}, stock)

	updated, err := svc.Confirm(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SalesOrderStatusConfirmed, updated.Status)
	require.Len(t, stock.reserved, 2)
	assert.True(t, stock.reserved[0].quantity.Equal(d("3")))
}

func TestConfirmFailsWhenStockShort(t *testing.T) {
	order := confirmedOrder(uuid.New(),
		models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("3")},
	)
	order.Status = enums.SalesOrderStatusDraft
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
			return order, nil
		},
	}
	stock := &stubStock{reserveErr: pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient available stock")}
	svc := newTestService(t, repo, &stubCatalog{}, stock)

	_, err := svc.Confirm(context.Background(), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestCancelReleasesOutstandingReservations(t *testing.T) {
	productID := uuid.New()
	order := confirmedOrder(uuid.New(),
		models.SalesOrderItem{ID: uuid.New(), ProductID: productID, Quantity: d("5"), DeliveredQty: d("2")},
	)
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
			return order, nil
		},
	}
	stock := &stubStock{}
	svc := newTestService(t, repo, &stubCatalog{}, stock)

	updated, err := svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.SalesOrderStatusCancelled, updated.Status)
	require.Len(t, stock.released, 1)
	assert.True(t, stock.released[0].quantity.Equal(d("3")))
}

func TestApplyDeliveryPartialThenComplete(t *testing.T) {
	item := models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("10")}
	order := confirmedOrder(uuid.New(), item)
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
			return order, nil
		},
	}
	stock := &stubStock{}
	svc := newTestService(t, repo, &stubCatalog{}, stock)

	updated, err := svc.ApplyDelivery(context.Background(), nil, order.ID,
		map[uuid.UUID]decimal.Decimal{item.ID: d("4")})
	require.NoError(t, err)
	assert.Equal(t, enums.SalesOrderStatusPartiallyDelivered, updated.Status)
	require.Len(t, stock.released, 1)

	updated, err = svc.ApplyDelivery(context.Background(), nil, order.ID,
		map[uuid.UUID]decimal.Decimal{item.ID: d("6")})
	require.NoError(t, err)
	assert.Equal(t, enums.SalesOrderStatusCompleted, updated.Status)
}

func TestApplyDeliveryRejectsOverDelivery(t *testing.T) {
	item := models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("2")}
	order := confirmedOrder(uuid.New(), item)
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
			return order, nil
		},
	}
	svc := newTestService(t, repo, &stubCatalog{}, &stubStock{})

	_, err := svc.ApplyDelivery(context.Background(), nil, order.ID,
		map[uuid.UUID]decimal.Decimal{item.ID: d("3")})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	cause := errors.Unwrap(pkgerrors.As(err))
	require.NotNil(t, cause)
	assert.Contains(t, cause.Error(), "exceeds remaining")
}
