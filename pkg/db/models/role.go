package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role groups a named set of permissions. Permissions are strings of the form
// "resource:action"; "*" grants everything.
type Role struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null;uniqueIndex"`
	Description *string        `gorm:"column:description"`
	Permissions pq.StringArray `gorm:"column:permissions;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
