package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// Repository exposes read-side queries over stock levels and movements.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListLevels returns stock levels, optionally filtered by warehouse.
func (r *Repository) ListLevels(ctx context.Context, warehouseID *uuid.UUID) ([]models.StockLevel, error) {
	query := r.db.WithContext(ctx).Order("updated_at desc")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	var out []models.StockLevel
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetLevel returns the stock level for one (product, warehouse) pair.
func (r *Repository) GetLevel(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockLevel, error) {
	var level models.StockLevel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// ListLowStock reports products whose summed on-hand quantity is below their
// configured minimum. Products that never moved count as zero on hand.
func (r *Repository) ListLowStock(ctx context.Context) ([]LowStockRow, error) {
	var out []LowStockRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name,
		       p.sku,
		       p.min_stock_level,
		       COALESCE(SUM(sl.quantity), 0) AS total_quantity
		FROM products p
		LEFT JOIN stock_levels sl ON sl.product_id = p.id
		GROUP BY p.id, p.name, p.sku, p.min_stock_level
		HAVING COALESCE(SUM(sl.quantity), 0) < p.min_stock_level
		ORDER BY p.name ASC`).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovementsByProduct returns the ledger rows for a product, newest first,
// optionally narrowed to one warehouse.
func (r *Repository) ListMovementsByProduct(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID, limit int) ([]models.StockMovement, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC")
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var out []models.StockMovement
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecentMovements returns the newest ledger rows across all products.
func (r *Repository) ListRecentMovements(ctx context.Context, limit int) ([]models.StockMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []models.StockMovement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountProducts returns the catalog size.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountWarehouses returns the number of stock locations.
func (r *Repository) CountWarehouses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Warehouse{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
