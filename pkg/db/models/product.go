package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory groups products for catalog browsing.
type ProductCategory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
}

// Product represents a stocked item in the catalog.
type Product struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name          string     `gorm:"column:name;not null"`
	SKU           string     `gorm:"column:sku;not null;uniqueIndex"`
	CategoryID    *uuid.UUID `gorm:"column:category_id;type:uuid"`
	UnitOfMeasure string     `gorm:"column:unit_of_measure"`
	Description   *string    `gorm:"column:description"`
	MinStockLevel int        `gorm:"column:min_stock_level;not null;default:0"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}
