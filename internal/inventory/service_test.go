package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubRepo struct {
	findItemFn            func(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error)
	applyDeltaFn          func(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error
	createMoveFn          func(ctx context.Context, move *models.InventoryMove) error
	findStockTakeFn       func(ctx context.Context, id uuid.UUID) (*models.StockTake, error)
	updateStockTakeFn     func(ctx context.Context, id uuid.UUID, updates map[string]any) error
	updateStockTakeLineFn func(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	return warehouse, nil
}

func (s *stubRepo) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	return &models.Warehouse{ID: id, Code: "KHO1", Name: "Kho chính"}, nil
}

func (s *stubRepo) UpdateWarehouse(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubRepo) ListWarehouses(ctx context.Context, activeOnly bool) ([]models.Warehouse, error) {
	return nil, nil
}

func (s *stubRepo) FindItem(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error) {
	if s.findItemFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.findItemFn(ctx, productID, warehouseID)
}

func (s *stubRepo) ListItemsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryItem, error) {
	return nil, nil
}

func (s *stubRepo) ApplyDelta(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error {
	if s.applyDeltaFn == nil {
		return nil
	}
	return s.applyDeltaFn(ctx, productID, warehouseID, onHandDelta, reservedDelta)
}

func (s *stubRepo) CreateMove(ctx context.Context, move *models.InventoryMove) error {
	if s.createMoveFn == nil {
		return nil
	}
	return s.createMoveFn(ctx, move)
}

func (s *stubRepo) ListMoves(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]models.InventoryMove, error) {
	return nil, nil
}

func (s *stubRepo) CreateStockTake(ctx context.Context, take *models.StockTake) (*models.StockTake, error) {
	return take, nil
}

func (s *stubRepo) FindStockTakeByID(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
	return s.findStockTakeFn(ctx, id)
}

func (s *stubRepo) UpdateStockTake(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateStockTakeFn == nil {
		return nil
	}
	return s.updateStockTakeFn(ctx, id, updates)
}

func (s *stubRepo) UpdateStockTakeLine(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.updateStockTakeLineFn == nil {
		return nil
	}
	return s.updateStockTakeLineFn(ctx, id, updates)
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel})
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(stubTxRunner{}, repo, nil, testLogger())
	require.NoError(t, err)
	return svc
}

func TestAdjustRecordsManualMove(t *testing.T) {
	var captured *models.InventoryMove
	repo := &stubRepo{
		createMoveFn: func(ctx context.Context, move *models.InventoryMove) error {
			captured = move
			return nil
		},
	}
	svc := newTestService(t, repo)

	move, err := svc.Adjust(context.Background(), AdjustInput{
		ProductID:   uuid.New(),
		WarehouseID: uuid.New(),
		Quantity:    decimal.NewFromInt(-3),
	})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, enums.InventoryMoveReasonManual, captured.Reason)
	assert.True(t, move.Quantity.Equal(decimal.NewFromInt(-3)))
}

func TestAdjustRejectsZeroQuantity(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	_, err := svc.Adjust(context.Background(), AdjustInput{
		ProductID:   uuid.New(),
		WarehouseID: uuid.New(),
		Quantity:    decimal.Zero,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAdjustMapsInsufficientStock(t *testing.T) {
	repo := &stubRepo{
		applyDeltaFn: func(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error {
			return ErrInsufficientStock
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Adjust(context.Background(), AdjustInput{
		ProductID:   uuid.New(),
		WarehouseID: uuid.New(),
		Quantity:    decimal.NewFromInt(-10),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestReserveChecksAvailableQuantity(t *testing.T) {
	repo := &stubRepo{
		findItemFn: func(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error) {
			return &models.InventoryItem{
				ProductID:   productID,
				WarehouseID: warehouseID,
				OnHandQty:   decimal.NewFromInt(10),
				ReservedQty: decimal.NewFromInt(8),
			}, nil
		},
	}
	svc := newTestService(t, repo)

	err := svc.Reserve(context.Background(), nil, uuid.New(), uuid.New(), decimal.NewFromInt(3))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	err = svc.Reserve(context.Background(), nil, uuid.New(), uuid.New(), decimal.NewFromInt(2))
	assert.NoError(t, err)
}

func TestReleaseClampsAtReservedQuantity(t *testing.T) {
	var onHand, reserved decimal.Decimal
	repo := &stubRepo{
		findItemFn: func(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error) {
			return &models.InventoryItem{
				ProductID:   productID,
				WarehouseID: warehouseID,
				OnHandQty:   decimal.NewFromInt(10),
				ReservedQty: decimal.NewFromInt(2),
			}, nil
		},
		applyDeltaFn: func(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error {
			onHand = onHandDelta
			reserved = reservedDelta
			return nil
		},
	}
	svc := newTestService(t, repo)

	require.NoError(t, svc.Release(context.Background(), nil, uuid.New(), uuid.New(), decimal.NewFromInt(5)))
	assert.True(t, onHand.IsZero())
	assert.True(t, reserved.Equal(decimal.NewFromInt(-2)))
}

func TestRecordCountsCombinesLineErrors(t *testing.T) {
	takeID := uuid.New()
	knownProduct := uuid.New()
	repo := &stubRepo{
		findStockTakeFn: func(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
			return &models.StockTake{
				ID:     id,
				Code:   "KK001",
				Status: enums.StockTakeStatusDraft,
				Lines: []models.StockTakeLine{
					{ID: uuid.New(), ProductID: knownProduct, ExpectedQty: decimal.NewFromInt(5)},
				},
			}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.RecordCounts(context.Background(), takeID, []LineCount{
		{ProductID: uuid.New(), CountedQty: decimal.NewFromInt(1)},
		{ProductID: knownProduct, CountedQty: decimal.NewFromInt(-1)},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	cause := errors.Unwrap(pkgerrors.As(err))
	require.NotNil(t, cause)
	assert.Contains(t, cause.Error(), "not part of this stocktake")
	assert.Contains(t, cause.Error(), "cannot be negative")
}

func TestReconcileMovesOnlyVariances(t *testing.T) {
	takeID := uuid.New()
	warehouseID := uuid.New()
	changed := uuid.New()
	unchanged := uuid.New()

	var moves []*models.InventoryMove
	repo := &stubRepo{
		findStockTakeFn: func(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
			return &models.StockTake{
				ID:          id,
				Code:        "KK002",
				WarehouseID: warehouseID,
				Status:      enums.StockTakeStatusDraft,
				Lines: []models.StockTakeLine{
					{ID: uuid.New(), ProductID: changed, ExpectedQty: decimal.NewFromInt(10), CountedQty: decimal.NewFromInt(7)},
					{ID: uuid.New(), ProductID: unchanged, ExpectedQty: decimal.NewFromInt(4), CountedQty: decimal.NewFromInt(4)},
				},
			}, nil
		},
		createMoveFn: func(ctx context.Context, move *models.InventoryMove) error {
			moves = append(moves, move)
			return nil
		},
	}
	svc := newTestService(t, repo)

	variances, err := svc.Reconcile(context.Background(), takeID, nil)
	require.NoError(t, err)
	require.Len(t, variances, 2)
	require.Len(t, moves, 1)
	assert.Equal(t, changed, moves[0].ProductID)
	assert.True(t, moves[0].Quantity.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, enums.InventoryMoveReasonStockTake, moves[0].Reason)
}

func TestReconcileCombinesVarianceErrors(t *testing.T) {
	takeID := uuid.New()
	warehouseID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	reconciled := false
	repo := &stubRepo{
		findStockTakeFn: func(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
			return &models.StockTake{
				ID:          id,
				Code:        "KK003",
				WarehouseID: warehouseID,
				Status:      enums.StockTakeStatusDraft,
				Lines: []models.StockTakeLine{
					{ID: uuid.New(), ProductID: first, ExpectedQty: decimal.NewFromInt(10), CountedQty: decimal.NewFromInt(2)},
					{ID: uuid.New(), ProductID: second, ExpectedQty: decimal.NewFromInt(6), CountedQty: decimal.NewFromInt(1)},
				},
			}, nil
		},
		applyDeltaFn: func(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error {
			return ErrInsufficientStock
		},
		updateStockTakeFn: func(ctx context.Context, id uuid.UUID, updates map[string]any) error {
			reconciled = true
			return nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Reconcile(context.Background(), takeID, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	cause := errors.Unwrap(pkgerrors.As(err))
	require.NotNil(t, cause)
	assert.Contains(t, cause.Error(), first.String())
	assert.Contains(t, cause.Error(), second.String())
	assert.False(t, reconciled, "stocktake must not be marked reconciled when variances fail")
}

func TestReconcileRejectsNonDraft(t *testing.T) {
	repo := &stubRepo{
		findStockTakeFn: func(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
			return &models.StockTake{ID: id, Status: enums.StockTakeStatusReconciled}, nil
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Reconcile(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}
