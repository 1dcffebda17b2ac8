package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// StockMovement records one immutable signed quantity change applied to a
// (product, warehouse) pair. Rows are append-only; QuantityAfter equals the
// stock level quantity at the moment the row was written. ReferenceID points
// at the owning document header without a foreign key, headers are never
// deleted in normal operation.
type StockMovement struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ProductID      uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	WarehouseID    uuid.UUID          `gorm:"column:warehouse_id;type:uuid;not null;index"`
	MovementType   enums.MovementType `gorm:"column:movement_type;type:movement_type_enum;not null"`
	ReferenceID    uuid.UUID          `gorm:"column:reference_id;type:uuid;not null"`
	QuantityChange int                `gorm:"column:quantity_change;not null"`
	QuantityAfter  int                `gorm:"column:quantity_after;not null"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
