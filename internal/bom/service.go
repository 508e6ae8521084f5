package bom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/db/models"
	pkgerrors "github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Service defines bill of materials operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.BOM, error)
	Get(ctx context.Context, id uuid.UUID) (*models.BOM, error)
	GetActiveForProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	CostRollup(ctx context.Context, id uuid.UUID) (*CostRollup, error)
	Explode(ctx context.Context, productID uuid.UUID, buildQty decimal.Decimal) ([]Requirement, error)
}

// productCatalog resolves component cost prices.
type productCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type service struct {
	repo     Repository
	products productCatalog
}

// NewService builds a BOM service with the required dependencies.
func NewService(repo Repository, products productCatalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bom repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	return &service{repo: repo, products: products}, nil
}

// Create registers a new BOM version for the product. Earlier active versions
// are superseded rather than edited.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.BOM, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom name required")
	}
	if len(input.Components) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom must contain at least one component")
	}

	seen := make(map[uuid.UUID]bool, len(input.Components))
	components := make([]models.BOMComponent, 0, len(input.Components))
	for i, component := range input.Components {
		if component.ComponentProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("component %d: product id required", i))
		}
		if component.ComponentProductID == input.ProductID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "a product cannot be a component of itself")
		}
		if seen[component.ComponentProductID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("component %s appears more than once", component.ComponentProductID))
		}
		seen[component.ComponentProductID] = true
		if component.Quantity.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("component %d: quantity must be positive", i))
		}
		if component.ScrapPercent.IsNegative() || component.ScrapPercent.GreaterThan(oneHundred) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("component %d: scrap percent out of range", i))
		}
		components = append(components, models.BOMComponent{
			ComponentProductID: component.ComponentProductID,
			Quantity:           component.Quantity,
			ScrapPercent:       component.ScrapPercent,
		})
	}

	version, err := s.repo.MaxVersionForProduct(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve bom version")
	}

	if current, err := s.repo.FindActiveByProduct(ctx, input.ProductID); err == nil {
		if err := s.repo.Update(ctx, current.ID, map[string]any{"is_active": false}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "supersede active bom")
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active bom")
	}

	bom := &models.BOM{
		ProductID:  input.ProductID,
		Name:       name,
		Version:    version + 1,
		IsActive:   true,
		Notes:      input.Notes,
		Components: components,
	}
	created, err := s.repo.Create(ctx, bom)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bom")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BOM, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bom id required")
	}
	bom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bom not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom")
	}
	return bom, nil
}

func (s *service) GetActiveForProduct(ctx context.Context, productID uuid.UUID) (*models.BOM, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	bom, err := s.repo.FindActiveByProduct(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active bom for product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom")
	}
	return bom, nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate bom")
	}
	return nil
}

// CostRollup prices one unit of the assembled product: each component costs
// quantity * (1 + scrap/100) * cost price.
func (s *service) CostRollup(ctx context.Context, id uuid.UUID) (*CostRollup, error) {
	bom, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	componentIDs := make([]uuid.UUID, 0, len(bom.Components))
	for _, component := range bom.Components {
		componentIDs = append(componentIDs, component.ComponentProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, componentIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load component products")
	}
	costByID := make(map[uuid.UUID]decimal.Decimal, len(catalog))
	for _, product := range catalog {
		costByID[product.ID] = product.CostPrice
	}

	rollup := &CostRollup{
		BOMID:     bom.ID,
		ProductID: bom.ProductID,
		TotalCost: decimal.Zero,
	}
	for _, component := range bom.Components {
		unitCost, ok := costByID[component.ComponentProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("component product %s no longer exists", component.ComponentProductID))
		}
		effective := effectiveQty(component)
		total := effective.Mul(unitCost)
		rollup.Lines = append(rollup.Lines, CostLine{
			ComponentProductID: component.ComponentProductID,
			Quantity:           component.Quantity,
			ScrapPercent:       component.ScrapPercent,
			EffectiveQty:       effective,
			UnitCost:           unitCost,
			TotalCost:          total,
		})
		rollup.TotalCost = rollup.TotalCost.Add(total)
	}
	return rollup, nil
}

// Explode returns single-level component demand for building buildQty units.
func (s *service) Explode(ctx context.Context, productID uuid.UUID, buildQty decimal.Decimal) ([]Requirement, error) {
	if buildQty.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "build quantity must be positive")
	}
	bom, err := s.GetActiveForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	requirements := make([]Requirement, 0, len(bom.Components))
	for _, component := range bom.Components {
		requirements = append(requirements, Requirement{
			ComponentProductID: component.ComponentProductID,
			RequiredQty:        effectiveQty(component).Mul(buildQty),
		})
	}
	return requirements, nil
}

func effectiveQty(component models.BOMComponent) decimal.Decimal {
	scrapFactor := decimal.NewFromInt(1).Add(component.ScrapPercent.Div(oneHundred))
	return component.Quantity.Mul(scrapFactor)
}
