package bom

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
)

// Repository defines persistence operations for bills of materials.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bom *models.BOM) (*models.BOM, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BOM, error)
	FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	MaxVersionForProduct(ctx context.Context, productID uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a BOM repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, bom *models.BOM) (*models.BOM, error) {
	if err := r.db.WithContext(ctx).Create(bom).Error; err != nil {
		return nil, err
	}
	return bom, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
	var bom models.BOM
	err := r.db.WithContext(ctx).
		Preload("Components").
		Where("id = ?", id).
		First(&bom).Error
	if err != nil {
		return nil, err
	}
	return &bom, nil
}

func (r *repository) FindActiveByProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error) {
	var bom models.BOM
	err := r.db.WithContext(ctx).
		Preload("Components").
		Where("product_id = ? AND is_active = TRUE", productID).
		Order("version DESC").
		First(&bom).Error
	if err != nil {
		return nil, err
	}
	return &bom, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.BOM{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) MaxVersionForProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var version int
	err := r.db.WithContext(ctx).
		Model(&models.BOM{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, err
	}
	return version, nil
}
