package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable or purchasable catalog item.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string          `gorm:"column:sku;not null;uniqueIndex"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Category    *string         `gorm:"column:category"`
	Unit        string          `gorm:"column:unit;not null;default:'cái'"`
	Barcode     *string         `gorm:"column:barcode"`
	CostPrice   decimal.Decimal `gorm:"column:cost_price;type:numeric(18,4);not null;default:0"`
	SalePrice   decimal.Decimal `gorm:"column:sale_price;type:numeric(18,4);not null;default:0"`
	TaxRate     decimal.Decimal `gorm:"column:tax_rate;type:numeric(7,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"column:min_stock;type:numeric(18,4);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	Inventory   []InventoryItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
