package models

import (
	"time"

	"github.com/google/uuid"
)

// StockLevel tracks the current quantity of one product in one warehouse.
// The row is created lazily on the first movement for the pair. Quantity has
// no lower bound: deliveries and adjustments may drive it negative.
type StockLevel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_stock_levels_product_warehouse"`
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_stock_levels_product_warehouse"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
