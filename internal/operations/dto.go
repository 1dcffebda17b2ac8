package operations

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
)

// ItemInput is one line of a receipt or delivery order payload.
type ItemInput struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	WarehouseID uuid.UUID `json:"warehouse_id" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required"`
}

// TransferItemInput is one line of an internal transfer payload.
type TransferItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required"`
}

// AdjustmentItemInput carries the counted quantity for one product in one
// warehouse.
type AdjustmentItemInput struct {
	ProductID       uuid.UUID `json:"product_id" validate:"required"`
	WarehouseID     uuid.UUID `json:"warehouse_id" validate:"required"`
	CountedQuantity int       `json:"counted_quantity"`
}

// CreateReceiptInput is the payload to record incoming goods.
type CreateReceiptInput struct {
	Supplier string      `json:"supplier"`
	Items    []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateDeliveryInput is the payload to record outgoing goods.
type CreateDeliveryInput struct {
	Customer string      `json:"customer"`
	Items    []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateTransferInput is the payload to move stock between warehouses.
type CreateTransferInput struct {
	FromWarehouseID uuid.UUID           `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uuid.UUID           `json:"to_warehouse_id" validate:"required"`
	Items           []TransferItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateAdjustmentInput is the payload to correct counted quantities.
type CreateAdjustmentInput struct {
	Reason string                `json:"reason"`
	Items  []AdjustmentItemInput `json:"items" validate:"required,min=1,dive"`
}

// ItemDTO is the transport shape for a persisted receipt or delivery line.
type ItemDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
}

// TransferItemDTO is the transport shape for a persisted transfer line.
type TransferItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// AdjustmentItemDTO reports the before and after quantities for one line.
type AdjustmentItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	WarehouseID    uuid.UUID `json:"warehouse_id"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
}

// ReceiptDTO is the transport shape for a persisted receipt.
type ReceiptDTO struct {
	ID        uuid.UUID            `json:"id"`
	Reference string               `json:"reference"`
	Supplier  string               `json:"supplier,omitempty"`
	Status    enums.DocumentStatus `json:"status"`
	CreatedBy uuid.UUID            `json:"created_by"`
	Items     []ItemDTO            `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
}

// DeliveryDTO is the transport shape for a persisted delivery order.
type DeliveryDTO struct {
	ID        uuid.UUID            `json:"id"`
	Reference string               `json:"reference"`
	Customer  string               `json:"customer,omitempty"`
	Status    enums.DocumentStatus `json:"status"`
	CreatedBy uuid.UUID            `json:"created_by"`
	Items     []ItemDTO            `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
}

// TransferDTO is the transport shape for a persisted internal transfer.
type TransferDTO struct {
	ID              uuid.UUID            `json:"id"`
	Reference       string               `json:"reference"`
	FromWarehouseID uuid.UUID            `json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID            `json:"to_warehouse_id"`
	Status          enums.DocumentStatus `json:"status"`
	CreatedBy       uuid.UUID            `json:"created_by"`
	Items           []TransferItemDTO    `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
}

// AdjustmentDTO is the transport shape for a persisted stock adjustment.
type AdjustmentDTO struct {
	ID        uuid.UUID            `json:"id"`
	Reference string               `json:"reference"`
	Reason    string               `json:"reason,omitempty"`
	Status    enums.DocumentStatus `json:"status"`
	CreatedBy uuid.UUID            `json:"created_by"`
	Items     []AdjustmentItemDTO  `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
}

func receiptFromModel(m *models.Receipt) *ReceiptDTO {
	if m == nil {
		return nil
	}
	items := make([]ItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, ItemDTO{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
		})
	}
	return &ReceiptDTO{
		ID:        m.ID,
		Reference: m.Reference,
		Supplier:  m.Supplier,
		Status:    m.Status,
		CreatedBy: m.CreatedBy,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}

func deliveryFromModel(m *models.DeliveryOrder) *DeliveryDTO {
	if m == nil {
		return nil
	}
	items := make([]ItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, ItemDTO{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
		})
	}
	return &DeliveryDTO{
		ID:        m.ID,
		Reference: m.Reference,
		Customer:  m.Customer,
		Status:    m.Status,
		CreatedBy: m.CreatedBy,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}

func transferFromModel(m *models.InternalTransfer) *TransferDTO {
	if m == nil {
		return nil
	}
	items := make([]TransferItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, TransferItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return &TransferDTO{
		ID:              m.ID,
		Reference:       m.Reference,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Status:          m.Status,
		CreatedBy:       m.CreatedBy,
		Items:           items,
		CreatedAt:       m.CreatedAt,
	}
}

func adjustmentFromModel(m *models.StockAdjustment) *AdjustmentDTO {
	if m == nil {
		return nil
	}
	items := make([]AdjustmentItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, AdjustmentItemDTO{
			ProductID:      item.ProductID,
			WarehouseID:    item.WarehouseID,
			QuantityBefore: item.QuantityBefore,
			QuantityAfter:  item.QuantityAfter,
		})
	}
	return &AdjustmentDTO{
		ID:        m.ID,
		Reference: m.Reference,
		Reason:    m.Reason,
		Status:    m.Status,
		CreatedBy: m.CreatedBy,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}
