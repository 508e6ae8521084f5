package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
)

// ErrInsufficientStock is returned when a delta would drive on-hand or
// reserved quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository manages persistence for warehouses, stock levels, the movement
// ledger, and stocktakes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error)
	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListWarehouses(ctx context.Context, activeOnly bool) ([]models.Warehouse, error)

	FindItem(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error)
	ListItemsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryItem, error)
	ApplyDelta(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error

	CreateMove(ctx context.Context, move *models.InventoryMove) error
	ListMoves(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]models.InventoryMove, error)

	CreateStockTake(ctx context.Context, take *models.StockTake) (*models.StockTake, error)
	FindStockTakeByID(ctx context.Context, id uuid.UUID) (*models.StockTake, error)
	UpdateStockTake(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateStockTakeLine(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (r *repository) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) UpdateWarehouse(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListWarehouses(ctx context.Context, activeOnly bool) ([]models.Warehouse, error) {
	query := r.db.WithContext(ctx).Order("code ASC")
	if activeOnly {
		query = query.Where("is_active = TRUE")
	}
	var warehouses []models.Warehouse
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *repository) FindItem(ctx context.Context, productID, warehouseID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		First(&item, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListItemsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("product_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ApplyDelta adjusts one stock row in place. The WHERE guard keeps both
// quantities non-negative under concurrent writers; zero rows affected on an
// existing row means the guard rejected the delta.
func (r *repository) ApplyDelta(ctx context.Context, productID, warehouseID uuid.UUID, onHandDelta, reservedDelta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Where("on_hand_qty + ? >= 0 AND reserved_qty + ? >= 0", onHandDelta, reservedDelta).
		Updates(map[string]any{
			"on_hand_qty":  gorm.Expr("on_hand_qty + ?", onHandDelta),
			"reserved_qty": gorm.Expr("reserved_qty + ?", reservedDelta),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	_, err := r.FindItem(ctx, productID, warehouseID)
	if err == nil {
		return ErrInsufficientStock
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	if onHandDelta.IsNegative() || reservedDelta.IsNegative() {
		return ErrInsufficientStock
	}
	return r.db.WithContext(ctx).Create(&models.InventoryItem{
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHandQty:   onHandDelta,
		ReservedQty: reservedDelta,
	}).Error
}

func (r *repository) CreateMove(ctx context.Context, move *models.InventoryMove) error {
	return r.db.WithContext(ctx).Create(move).Error
}

func (r *repository) ListMoves(ctx context.Context, productID, warehouseID uuid.UUID, limit int) ([]models.InventoryMove, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if productID != uuid.Nil {
		query = query.Where("product_id = ?", productID)
	}
	if warehouseID != uuid.Nil {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var moves []models.InventoryMove
	if err := query.Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *repository) CreateStockTake(ctx context.Context, take *models.StockTake) (*models.StockTake, error) {
	if err := r.db.WithContext(ctx).Create(take).Error; err != nil {
		return nil, err
	}
	return take, nil
}

func (r *repository) FindStockTakeByID(ctx context.Context, id uuid.UUID) (*models.StockTake, error) {
	var take models.StockTake
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&take, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &take, nil
}

func (r *repository) UpdateStockTake(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.StockTake{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateStockTakeLine(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.StockTakeLine{}).
		Where("id = ?", id).
		Updates(updates).Error
}
