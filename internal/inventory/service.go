package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/metrics"
)

// Service defines warehouse, stock level, movement, and stocktake operations.
type Service interface {
	CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*models.Warehouse, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, input UpdateWarehouseInput) (*models.Warehouse, error)
	ListWarehouses(ctx context.Context, activeOnly bool) ([]models.Warehouse, error)

	GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*Level, error)
	ListLevels(ctx context.Context, warehouseID uuid.UUID) ([]Level, error)
	History(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]models.InventoryMove, error)

	Adjust(ctx context.Context, input AdjustInput) (*models.InventoryMove, error)
	Apply(ctx context.Context, tx *gorm.DB, input MovementInput) error
	Reserve(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error
	Release(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error

	CreateStockTake(ctx context.Context, input CreateStockTakeInput) (*models.StockTake, error)
	GetStockTake(ctx context.Context, id uuid.UUID) (*models.StockTake, error)
	RecordCounts(ctx context.Context, id uuid.UUID, counts []LineCount) (*models.StockTake, error)
	Reconcile(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) ([]VarianceLine, error)
	CancelStockTake(ctx context.Context, id uuid.UUID) error
}

// txRunner runs a function inside one database transaction. *db.Client
// satisfies it.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	client       txRunner
	repo         Repository
	orderMetrics *metrics.OrderMetrics
	logg         *logger.Logger
}

// NewService builds an inventory service with the required dependencies.
func NewService(client txRunner, repo Repository, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{client: client, repo: repo, orderMetrics: orderMetrics, logg: logg}, nil
}

func (s *service) CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*models.Warehouse, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse code required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse name required")
	}

	warehouse := &models.Warehouse{
		Code:     code,
		Name:     name,
		Address:  input.Address,
		IsActive: true,
	}
	created, err := s.repo.CreateWarehouse(ctx, warehouse)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "warehouse code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warehouse")
	}
	return created, nil
}

func (s *service) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	warehouse, err := s.repo.FindWarehouseByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
	}
	return warehouse, nil
}

func (s *service) UpdateWarehouse(ctx context.Context, id uuid.UUID, input UpdateWarehouseInput) (*models.Warehouse, error) {
	if _, err := s.GetWarehouse(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Address != nil {
		updates["address"] = input.Address
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateWarehouse(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse")
		}
	}
	return s.GetWarehouse(ctx, id)
}

func (s *service) ListWarehouses(ctx context.Context, activeOnly bool) ([]models.Warehouse, error) {
	warehouses, err := s.repo.ListWarehouses(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouses")
	}
	return warehouses, nil
}

func (s *service) GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*Level, error) {
	if productID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and warehouse id required")
	}
	item, err := s.repo.FindItem(ctx, productID, warehouseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &Level{
				ProductID:    productID,
				WarehouseID:  warehouseID,
				OnHandQty:    decimal.Zero,
				ReservedQty:  decimal.Zero,
				AvailableQty: decimal.Zero,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock level")
	}
	level := toLevel(*item)
	return &level, nil
}

func (s *service) ListLevels(ctx context.Context, warehouseID uuid.UUID) ([]Level, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	items, err := s.repo.ListItemsByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock levels")
	}
	levels := make([]Level, 0, len(items))
	for _, item := range items {
		levels = append(levels, toLevel(item))
	}
	return levels, nil
}

func (s *service) History(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]models.InventoryMove, error) {
	moves, err := s.repo.ListMoves(ctx, productID, warehouseID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory moves")
	}
	return moves, nil
}

func (s *service) Adjust(ctx context.Context, input AdjustInput) (*models.InventoryMove, error) {
	if input.ProductID == uuid.Nil || input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and warehouse id required")
	}
	if input.Quantity.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "adjustment quantity cannot be zero")
	}

	move := &models.InventoryMove{
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Quantity:    input.Quantity,
		Reason:      enums.InventoryMoveReasonManual,
		Notes:       input.Notes,
		CreatedBy:   input.ActorID,
	}
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return s.apply(ctx, tx, MovementInput{
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Quantity:    input.Quantity,
			Reason:      enums.InventoryMoveReasonManual,
			Notes:       input.Notes,
			ActorID:     input.ActorID,
		}, move)
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

// Apply records one movement and mutates the stock row inside the caller's
// transaction. Purchase receipts and deliveries go through here so the ledger
// and the level never diverge.
func (s *service) Apply(ctx context.Context, tx *gorm.DB, input MovementInput) error {
	return s.apply(ctx, tx, input, nil)
}

func (s *service) apply(ctx context.Context, tx *gorm.DB, input MovementInput, out *models.InventoryMove) error {
	if !input.Reason.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid movement reason %q", input.Reason))
	}
	repo := s.repo.WithTx(tx)

	if err := repo.ApplyDelta(ctx, input.ProductID, input.WarehouseID, input.Quantity, decimal.Zero); err != nil {
		if err == ErrInsufficientStock {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply stock delta")
	}

	move := out
	if move == nil {
		move = &models.InventoryMove{}
	}
	move.ProductID = input.ProductID
	move.WarehouseID = input.WarehouseID
	move.Quantity = input.Quantity
	move.Reason = input.Reason
	move.ReferenceID = input.ReferenceID
	move.Notes = input.Notes
	move.CreatedBy = input.ActorID
	if err := repo.CreateMove(ctx, move); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record inventory move")
	}
	s.orderMetrics.IncMovement(input.Reason.String())
	return nil
}

// Reserve holds stock for a confirmed sales order without changing on-hand.
func (s *service) Reserve(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reserve quantity must be positive")
	}
	item, err := s.repo.WithTx(tx).FindItem(ctx, productID, warehouseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock level")
	}
	if item.OnHandQty.Sub(item.ReservedQty).LessThan(quantity) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient available stock")
	}
	if err := s.repo.WithTx(tx).ApplyDelta(ctx, productID, warehouseID, decimal.Zero, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
	}
	return nil
}

// Release undoes a reservation, clamping at zero for rows already drained by
// a delivery.
func (s *service) Release(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.Sign() <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "release quantity must be positive")
	}
	item, err := s.repo.WithTx(tx).FindItem(ctx, productID, warehouseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock level")
	}
	release := quantity
	if item.ReservedQty.LessThan(release) {
		release = item.ReservedQty
	}
	if release.IsZero() {
		return nil
	}
	if err := s.repo.WithTx(tx).ApplyDelta(ctx, productID, warehouseID, decimal.Zero, release.Neg()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release stock")
	}
	return nil
}

func (s *service) CreateStockTake(ctx context.Context, input CreateStockTakeInput) (*models.StockTake, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stocktake code required")
	}
	if _, err := s.GetWarehouse(ctx, input.WarehouseID); err != nil {
		return nil, err
	}

	productIDs := input.ProductIDs
	if len(productIDs) == 0 {
		items, err := s.repo.ListItemsByWarehouse(ctx, input.WarehouseID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot stock levels")
		}
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}
	}
	if len(productIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stocktake has no products to count")
	}

	take := &models.StockTake{
		Code:        code,
		WarehouseID: input.WarehouseID,
		Status:      enums.StockTakeStatusDraft,
		Notes:       input.Notes,
		CreatedBy:   input.ActorID,
	}
	for _, productID := range productIDs {
		expected := decimal.Zero
		item, err := s.repo.FindItem(ctx, productID, input.WarehouseID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot stock levels")
		}
		if err == nil {
			expected = item.OnHandQty
		}
		take.Lines = append(take.Lines, models.StockTakeLine{
			ProductID:   productID,
			ExpectedQty: expected,
			CountedQty:  expected,
		})
	}

	created, err := s.repo.CreateStockTake(ctx, take)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "stocktake code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stocktake")
	}
	return created, nil
}

func (s *service) GetStockTake(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stocktake id required")
	}
	take, err := s.repo.FindStockTakeByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stocktake not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stocktake")
	}
	return take, nil
}

// RecordCounts writes counted quantities onto draft lines. Per-line failures
// are combined so one bad product does not hide the rest.
func (s *service) RecordCounts(ctx context.Context, id uuid.UUID, counts []LineCount) (*models.StockTake, error) {
	take, err := s.GetStockTake(ctx, id)
	if err != nil {
		return nil, err
	}
	if take.Status != enums.StockTakeStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stocktake is no longer in draft")
	}
	if len(counts) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no counts provided")
	}

	lineByProduct := make(map[uuid.UUID]models.StockTakeLine, len(take.Lines))
	for _, line := range take.Lines {
		lineByProduct[line.ProductID] = line
	}

	var combined error
	for _, count := range counts {
		line, ok := lineByProduct[count.ProductID]
		if !ok {
			combined = multierr.Append(combined, fmt.Errorf("product %s is not part of this stocktake", count.ProductID))
			continue
		}
		if count.CountedQty.IsNegative() {
			combined = multierr.Append(combined, fmt.Errorf("product %s: counted quantity cannot be negative", count.ProductID))
			continue
		}
		if err := s.repo.UpdateStockTakeLine(ctx, line.ID, map[string]any{"counted_qty": count.CountedQty}); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("product %s: %w", count.ProductID, err))
		}
	}
	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "record stocktake counts").WithDetails(multierr.Errors(combined))
	}
	return s.GetStockTake(ctx, id)
}

// Reconcile closes the stocktake: every non-zero variance becomes a signed
// movement so the ledger explains the correction.
func (s *service) Reconcile(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) ([]VarianceLine, error) {
	take, err := s.GetStockTake(ctx, id)
	if err != nil {
		return nil, err
	}
	if take.Status != enums.StockTakeStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "stocktake is no longer in draft")
	}

	variances := make([]VarianceLine, 0, len(take.Lines))
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		var combined error
		for _, line := range take.Lines {
			variance := line.CountedQty.Sub(line.ExpectedQty)
			variances = append(variances, VarianceLine{
				ProductID:   line.ProductID,
				ExpectedQty: line.ExpectedQty,
				CountedQty:  line.CountedQty,
				Variance:    variance,
			})
			if variance.IsZero() {
				continue
			}
			if err := s.apply(ctx, tx, MovementInput{
				ProductID:   line.ProductID,
				WarehouseID: take.WarehouseID,
				Quantity:    variance,
				Reason:      enums.InventoryMoveReasonStockTake,
				ReferenceID: &take.ID,
				ActorID:     actorID,
			}, nil); err != nil {
				combined = multierr.Append(combined, fmt.Errorf("product %s: %w", line.ProductID, err))
			}
		}
		if combined != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, combined, "apply stocktake variances")
		}
		return s.repo.WithTx(tx).UpdateStockTake(ctx, take.ID, map[string]any{
			"status":        enums.StockTakeStatusReconciled,
			"reconciled_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(ctx, fmt.Sprintf("stocktake %s reconciled with %d lines", take.Code, len(take.Lines)))
	return variances, nil
}

func (s *service) CancelStockTake(ctx context.Context, id uuid.UUID) error {
	take, err := s.GetStockTake(ctx, id)
	if err != nil {
		return err
	}
	if take.Status != enums.StockTakeStatusDraft {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "stocktake is no longer in draft")
	}
	if err := s.repo.UpdateStockTake(ctx, id, map[string]any{"status": enums.StockTakeStatusCancelled}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel stocktake")
	}
	return nil
}

func toLevel(item models.InventoryItem) Level {
	return Level{
		ProductID:    item.ProductID,
		WarehouseID:  item.WarehouseID,
		OnHandQty:    item.OnHandQty,
		ReservedQty:  item.ReservedQty,
		AvailableQty: item.OnHandQty.Sub(item.ReservedQty),
		UpdatedAt:    item.UpdatedAt,
	}
}
