package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// Receipt is the header document for incoming goods.
type Receipt struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Reference string               `gorm:"column:reference;not null;uniqueIndex"`
	Supplier  string               `gorm:"column:supplier"`
	Status    enums.DocumentStatus `gorm:"column:status;type:document_status_enum;not null;default:draft"`
	CreatedBy uuid.UUID            `gorm:"column:created_by;type:uuid;not null"`
	Items     []ReceiptItem        `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// ReceiptItem is one line of a receipt.
type ReceiptItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReceiptID   uuid.UUID `gorm:"column:receipt_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
}
