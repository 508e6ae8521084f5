package products

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/logger"
	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/pagination"
)

const cacheTTL = 5 * time.Minute

// productCache is the read-through cache surface backed by Redis.
type productCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope, id string) string
}

// Service defines product catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error)
}

type service struct {
	repo  Repository
	cache productCache
	logg  *logger.Logger
}

// NewService builds a product service. The cache is optional; when nil every
// read goes straight to the database.
func NewService(repo Repository, cache productCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product unit required")
	}
	if input.CostPrice.IsNegative() || input.SalePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	if input.TaxRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate cannot be negative")
	}

	product := &models.Product{
		SKU:         sku,
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		Unit:        unit,
		Barcode:     input.Barcode,
		CostPrice:   input.CostPrice,
		SalePrice:   input.SalePrice,
		TaxRate:     input.TaxRate,
		MinStock:    input.MinStock,
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	if cached := s.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	s.toCache(ctx, product)
	return product, nil
}

func (s *service) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product by sku")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = input.Description
	}
	if input.Category != nil {
		updates["category"] = input.Category
	}
	if input.Unit != nil {
		unit := strings.TrimSpace(*input.Unit)
		if unit == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product unit cannot be empty")
		}
		updates["unit"] = unit
	}
	if input.Barcode != nil {
		updates["barcode"] = input.Barcode
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
		}
		updates["cost_price"] = *input.CostPrice
	}
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price cannot be negative")
		}
		updates["sale_price"] = *input.SalePrice
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate cannot be negative")
		}
		updates["tax_rate"] = *input.TaxRate
	}
	if input.MinStock != nil {
		updates["min_stock"] = *input.MinStock
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	s.invalidate(ctx, id)
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return product, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*List, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

func (s *service) fromCache(ctx context.Context, id uuid.UUID) *models.Product {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey("product", id.String()))
	if err != nil {
		if err != redislib.Nil {
			s.logg.Warn(ctx, "product cache read failed")
		}
		return nil
	}
	var product models.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return nil
	}
	return &product
}

func (s *service) toCache(ctx context.Context, product *models.Product) {
	if s.cache == nil || product == nil {
		return
	}
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("product", product.ID.String()), string(payload), cacheTTL); err != nil {
		s.logg.Warn(ctx, "product cache write failed")
	}
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey("product", id.String())); err != nil {
		s.logg.Warn(ctx, "product cache invalidation failed")
	}
}
