package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// StockAdjustment is the header document for manual quantity corrections.
type StockAdjustment struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Reference string                `gorm:"column:reference;not null;uniqueIndex"`
	Reason    string                `gorm:"column:reason"`
	Status    enums.DocumentStatus  `gorm:"column:status;type:document_status_enum;not null;default:draft"`
	CreatedBy uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	Items     []StockAdjustmentItem `gorm:"foreignKey:AdjustmentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// StockAdjustmentItem records the observed and corrected quantity for one
// product in one warehouse. The applied delta is QuantityAfter - QuantityBefore.
type StockAdjustmentItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	AdjustmentID   uuid.UUID `gorm:"column:adjustment_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	WarehouseID    uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	QuantityBefore int       `gorm:"column:quantity_before;not null"`
	QuantityAfter  int       `gorm:"column:quantity_after;not null"`
}
