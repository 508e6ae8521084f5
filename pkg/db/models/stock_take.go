package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nguyenhoangkha03/quan-ly-ban-hang-backend/pkg/enums"
)

// StockTake is a physical count session for one warehouse.
type StockTake struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code         string                `gorm:"column:code;not null;uniqueIndex"`
	WarehouseID  uuid.UUID             `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Status       enums.StockTakeStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	ReconciledAt *time.Time            `gorm:"column:reconciled_at"`
	Notes        *string               `gorm:"column:notes"`
	CreatedBy    *uuid.UUID            `gorm:"column:created_by;type:uuid"`
	Lines        []StockTakeLine       `gorm:"foreignKey:StockTakeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
