package operations

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// Repository persists transaction document headers and lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an operations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateReceipt inserts the receipt header together with its items.
func (r *Repository) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// CreateDeliveryOrder inserts the delivery order header together with its items.
func (r *Repository) CreateDeliveryOrder(ctx context.Context, order *models.DeliveryOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateTransfer inserts the internal transfer header together with its items.
func (r *Repository) CreateTransfer(ctx context.Context, transfer *models.InternalTransfer) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

// CreateAdjustment inserts the stock adjustment header together with its items.
func (r *Repository) CreateAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// ListReceipts returns the newest receipts with their items.
func (r *Repository) ListReceipts(ctx context.Context, limit int) ([]models.Receipt, error) {
	var out []models.Receipt
	if err := r.listDocuments(ctx, limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListDeliveryOrders returns the newest delivery orders with their items.
func (r *Repository) ListDeliveryOrders(ctx context.Context, limit int) ([]models.DeliveryOrder, error) {
	var out []models.DeliveryOrder
	if err := r.listDocuments(ctx, limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListTransfers returns the newest internal transfers with their items.
func (r *Repository) ListTransfers(ctx context.Context, limit int) ([]models.InternalTransfer, error) {
	var out []models.InternalTransfer
	if err := r.listDocuments(ctx, limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAdjustments returns the newest stock adjustments with their items.
func (r *Repository) ListAdjustments(ctx context.Context, limit int) ([]models.StockAdjustment, error) {
	var out []models.StockAdjustment
	if err := r.listDocuments(ctx, limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) listDocuments(ctx context.Context, limit int) *gorm.DB {
	if limit <= 0 {
		limit = 50
	}
	return r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit)
}
