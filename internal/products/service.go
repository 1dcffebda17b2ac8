package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	SKU           string
	CategoryID    *uuid.UUID
	UnitOfMeasure string
	Description   *string
	MinStockLevel int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	SKU           *string
	CategoryID    *uuid.UUID
	UnitOfMeasure *string
	Description   *string
	MinStockLevel *int
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name        string
	Description *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.MinStockLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_stock_level cannot be negative")
	}

	var created *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.CategoryID != nil {
			if _, err := repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
			}
		}

		if _, err := repo.FindBySKU(ctx, sku); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check sku")
		}

		var err error
		created, err = repo.Create(ctx, &models.Product{
			ID:            uuid.New(),
			Name:          name,
			SKU:           sku,
			CategoryID:    input.CategoryID,
			UnitOfMeasure: strings.TrimSpace(input.UnitOfMeasure),
			Description:   input.Description,
			MinStockLevel: input.MinStockLevel,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
			}
			product.Name = name
		}
		if input.SKU != nil {
			sku := strings.TrimSpace(*input.SKU)
			if sku == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
			}
			if sku != product.SKU {
				if _, err := repo.FindBySKU(ctx, sku); err == nil {
					return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check sku")
				}
			}
			product.SKU = sku
		}
		if input.CategoryID != nil {
			if _, err := repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
			}
			product.CategoryID = input.CategoryID
		}
		if input.UnitOfMeasure != nil {
			product.UnitOfMeasure = strings.TrimSpace(*input.UnitOfMeasure)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.MinStockLevel != nil {
			if *input.MinStockLevel < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "min_stock_level cannot be negative")
			}
			product.MinStockLevel = *input.MinStockLevel
		}

		updated, err = repo.Update(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
		}

		if err := repo.Delete(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
		}
		return nil
	})
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return FromModel(product), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category, err := s.repo.CreateCategory(ctx, &models.ProductCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return CategoryFromModel(category), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *CategoryFromModel(&rows[i]))
	}
	return out, nil
}
