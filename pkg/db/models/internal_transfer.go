package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// InternalTransfer is the header document for moving stock between warehouses.
type InternalTransfer struct {
	ID              uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Reference       string                 `gorm:"column:reference;not null;uniqueIndex"`
	FromWarehouseID uuid.UUID              `gorm:"column:from_warehouse_id;type:uuid;not null"`
	ToWarehouseID   uuid.UUID              `gorm:"column:to_warehouse_id;type:uuid;not null"`
	Status          enums.DocumentStatus   `gorm:"column:status;type:document_status_enum;not null;default:draft"`
	CreatedBy       uuid.UUID              `gorm:"column:created_by;type:uuid;not null"`
	Items           []InternalTransferItem `gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// InternalTransferItem is one line of an internal transfer.
type InternalTransferItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TransferID uuid.UUID `gorm:"column:transfer_id;type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
}
