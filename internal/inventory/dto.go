package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// StockLevelDTO is the transport shape for current on-hand quantity.
type StockLevelDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovementDTO is the transport shape for one ledger row.
type MovementDTO struct {
	ID             uuid.UUID          `json:"id"`
	ProductID      uuid.UUID          `json:"product_id"`
	WarehouseID    uuid.UUID          `json:"warehouse_id"`
	MovementType   enums.MovementType `json:"movement_type"`
	ReferenceID    uuid.UUID          `json:"reference_id"`
	QuantityChange int                `json:"quantity_change"`
	QuantityAfter  int                `json:"quantity_after"`
	CreatedAt      time.Time          `json:"created_at"`
}

// LowStockRow reports a product whose total on-hand quantity fell below its
// configured minimum.
type LowStockRow struct {
	ProductID     uuid.UUID `json:"product_id" gorm:"column:product_id"`
	Name          string    `json:"name" gorm:"column:name"`
	SKU           string    `json:"sku" gorm:"column:sku"`
	MinStockLevel int       `json:"min_stock_level" gorm:"column:min_stock_level"`
	TotalQuantity int       `json:"total_quantity" gorm:"column:total_quantity"`
}

func LevelFromModel(l *models.StockLevel) *StockLevelDTO {
	if l == nil {
		return nil
	}
	return &StockLevelDTO{
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		UpdatedAt:   l.UpdatedAt,
	}
}

func MovementFromModel(m *models.StockMovement) *MovementDTO {
	if m == nil {
		return nil
	}
	return &MovementDTO{
		ID:             m.ID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		MovementType:   m.MovementType,
		ReferenceID:    m.ReferenceID,
		QuantityChange: m.QuantityChange,
		QuantityAfter:  m.QuantityAfter,
		CreatedAt:      m.CreatedAt,
	}
}
