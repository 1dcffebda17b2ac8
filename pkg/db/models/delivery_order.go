package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// DeliveryOrder is the header document for outgoing goods.
type DeliveryOrder struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Reference string               `gorm:"column:reference;not null;uniqueIndex"`
	Customer  string               `gorm:"column:customer"`
	Status    enums.DocumentStatus `gorm:"column:status;type:document_status_enum;not null;default:draft"`
	CreatedBy uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	Items     []DeliveryOrderItem  `gorm:"foreignKey:DeliveryOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// DeliveryOrderItem is one line of a delivery order.
type DeliveryOrderItem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	DeliveryOrderID uuid.UUID `gorm:"column:delivery_order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	WarehouseID     uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	Quantity        int       `gorm:"column:quantity;not null"`
}
