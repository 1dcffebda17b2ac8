package models

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse represents a physical stock location.
type Warehouse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Location  *string   `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
