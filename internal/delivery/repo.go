package delivery

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
)

// Repository defines persistence operations for deliveries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]models.Delivery, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a delivery repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, delivery *models.Delivery) (*models.Delivery, error) {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&delivery).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sales_order_id = ?", salesOrderID).
		Order("created_at DESC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}
