package delivery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/internal/inventory"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubRepo struct {
	createFn   func(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	updateFn   func(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	if s.createFn == nil {
		return delivery, nil
	}
	return s.createFn(ctx, delivery)
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, id, updates)
}

func (s *stubRepo) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]models.Delivery, error) {
	return nil, nil
}

type stubOrders struct {
	order     *models.SalesOrder
	delivered map[uuid.UUID]decimal.Decimal
}

func (s *stubOrders) Get(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	return s.order, nil
}

func (s *stubOrders) ApplyDelivery(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, delivered map[uuid.UUID]decimal.Decimal) (*models.SalesOrder, error) {
	s.delivered = delivered
	return s.order, nil
}

type stubStock struct {
	applied []inventory.MovementInput
}

func (s *stubStock) Apply(ctx context.Context, tx *gorm.DB, input inventory.MovementInput) error {
	s.applied = append(s.applied, input)
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

func confirmedSalesOrder(items ...models.SalesOrderItem) *models.SalesOrder {
	return &models.SalesOrder{
		ID:          uuid.New(),
		WarehouseID: uuid.New(),
		Status:      enums.SalesOrderStatusConfirmed,
		Items:       items,
	}
}

func newTestService(t *testing.T, repo Repository, orders salesOrders, stock stockApplier) Service {
	t.Helper()
	svc, err := NewService(stubTxRunner{}, repo, orders, stock, testLogger())
	require.NoError(t, err)
	return svc
}

func TestCreateSnapshotsOrderLines(t *testing.T) {
	item := models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("10")}
	order := confirmedSalesOrder(item)
	var captured *models.Delivery
	repo := &stubRepo{
		createFn: func(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
			captured = delivery
			return delivery, nil
		},
	}
	svc := newTestService(t, repo, &stubOrders{order: order}, &stubStock{})

	_, err := svc.Create(context.Background(), CreateInput{
		SalesOrderID: order.ID,
		Lines:        []LineInput{{SalesOrderItemID: item.ID, Quantity: d("4")}},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, enums.DeliveryStatusPending, captured.Status)
	assert.Equal(t, order.WarehouseID, captured.WarehouseID)
	require.Len(t, captured.Items, 1)
	assert.Equal(t, item.ProductID, captured.Items[0].ProductID)
	assert.True(t, captured.Items[0].Quantity.Equal(d("4")))
}

func TestCreateRejectsOverRemaining(t *testing.T) {
	item := models.SalesOrderItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: d("5"), DeliveredQty: d("4")}
	order := confirmedSalesOrder(item)
	svc := newTestService(t, &stubRepo{}, &stubOrders{order: order}, &stubStock{})

	_, err := svc.Create(context.Background(), CreateInput{
		SalesOrderID: order.ID,
		Lines:        []LineInput{{SalesOrderItemID: item.ID, Quantity: d("2")}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsDraftOrder(t *testing.T) {
	order := confirmedSalesOrder()
	order.Status = enums.SalesOrderStatusDraft
	svc := newTestService(t, &stubRepo{}, &stubOrders{order: order}, &stubStock{})

	_, err := svc.Create(context.Background(), CreateInput{
		SalesOrderID: order.ID,
		Lines:        []LineInput{{SalesOrderItemID: uuid.New(), Quantity: d("1")}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestShipMovesStockOutAndRollsUpOrder(t *testing.T) {
	orderItemID := uuid.New()
	productID := uuid.New()
	warehouseID := uuid.New()
	note := &models.Delivery{
		ID:           uuid.New(),
		Code:         "DL-20250801-TEST01",
		SalesOrderID: uuid.New(),
		WarehouseID:  warehouseID,
		Status:       enums.DeliveryStatusPending,
		Items: []models.DeliveryItem{
			{ID: uuid.New(), SalesOrderItemID: orderItemID, ProductID: productID, Quantity: d("4")},
		},
	}
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
			return note, nil
		},
	}
	orders := &stubOrders{order: confirmedSalesOrder()}
	stock := &stubStock{}
	svc := newTestService(t, repo, orders, stock)

	shipped, err := svc.Ship(context.Background(), note.ID)
	require.NoError(t, err)

	assert.Equal(t, enums.DeliveryStatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)

	require.Len(t, stock.applied, 1)
	assert.True(t, stock.applied[0].Quantity.Equal(d("-4")))
	assert.Equal(t, enums.InventoryMoveReasonSalesDelivery, stock.applied[0].Reason)
	assert.Equal(t, warehouseID, stock.applied[0].WarehouseID)

	require.NotNil(t, orders.delivered)
	assert.True(t, orders.delivered[orderItemID].Equal(d("4")))
}

func TestShipRequiresPendingStatus(t *testing.T) {
	note := &models.Delivery{ID: uuid.New(), Status: enums.DeliveryStatusShipped}
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
			return note, nil
		},
	}
	svc := newTestService(t, repo, &stubOrders{order: confirmedSalesOrder()}, &stubStock{})

	_, err := svc.Ship(context.Background(), note.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestCancelOnlyPending(t *testing.T) {
	note := &models.Delivery{ID: uuid.New(), Status: enums.DeliveryStatusDelivered}
	repo := &stubRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
			return note, nil
		},
	}
	svc := newTestService(t, repo, &stubOrders{order: confirmedSalesOrder()}, &stubStock{})

	_, err := svc.Cancel(context.Background(), note.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}
