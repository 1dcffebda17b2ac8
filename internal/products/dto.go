package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
)

// ProductDTO is the transport shape for catalog products.
type ProductDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	UnitOfMeasure string     `json:"unit_of_measure,omitempty"`
	Description   *string    `json:"description,omitempty"`
	MinStockLevel int        `json:"min_stock_level"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CategoryDTO is the transport shape for product categories.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		UnitOfMeasure: p.UnitOfMeasure,
		Description:   p.Description,
		MinStockLevel: p.MinStockLevel,
		CreatedAt:     p.CreatedAt,
	}
}

func CategoryFromModel(c *models.ProductCategory) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
