package bom

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComponentInput is one component line of a bill of materials.
type ComponentInput struct {
	ComponentProductID uuid.UUID       `json:"component_product_id" validate:"required"`
	Quantity           decimal.Decimal `json:"quantity" validate:"required"`
	ScrapPercent       decimal.Decimal `json:"scrap_percent"`
}

// CreateInput registers a bill of materials for an assembled product.
type CreateInput struct {
	ProductID  uuid.UUID        `json:"product_id" validate:"required"`
	Name       string           `json:"name" validate:"required,max=255"`
	Notes      *string          `json:"notes,omitempty"`
	Components []ComponentInput `json:"components" validate:"required,min=1,dive"`
}

// CostLine is the rolled-up cost contribution of one component.
type CostLine struct {
	ComponentProductID uuid.UUID       `json:"component_product_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	ScrapPercent       decimal.Decimal `json:"scrap_percent"`
	EffectiveQty       decimal.Decimal `json:"effective_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	TotalCost          decimal.Decimal `json:"total_cost"`
}

// CostRollup is the material cost of building one unit of the product.
type CostRollup struct {
	BOMID     uuid.UUID       `json:"bom_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Lines     []CostLine      `json:"lines"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// Requirement is one component demand from an explosion run.
type Requirement struct {
	ComponentProductID uuid.UUID       `json:"component_product_id"`
	RequiredQty        decimal.Decimal `json:"required_qty"`
}
