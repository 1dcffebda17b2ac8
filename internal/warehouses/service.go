package warehouses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// Service exposes warehouse management operations.
type Service interface {
	CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*WarehouseDTO, error)
	UpdateWarehouse(ctx context.Context, warehouseID uuid.UUID, input UpdateWarehouseInput) (*WarehouseDTO, error)
	DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error
	GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseDTO, error)
	ListWarehouses(ctx context.Context) ([]WarehouseDTO, error)
}

// CreateWarehouseInput holds the payload to create a warehouse.
type CreateWarehouseInput struct {
	Name     string
	Location *string
}

// UpdateWarehouseInput holds optional mutation values for a warehouse.
type UpdateWarehouseInput struct {
	Name     *string
	Location *string
}

type service struct {
	repo *Repository
}

// NewService constructs a warehouse service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouse repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateWarehouse(ctx context.Context, input CreateWarehouseInput) (*WarehouseDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	warehouse, err := s.repo.Create(ctx, &models.Warehouse{
		ID:       uuid.New(),
		Name:     name,
		Location: input.Location,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create warehouse")
	}
	return FromModel(warehouse), nil
}

func (s *service) UpdateWarehouse(ctx context.Context, warehouseID uuid.UUID, input UpdateWarehouseInput) (*WarehouseDTO, error) {
	warehouse, err := s.repo.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup warehouse")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		warehouse.Name = name
	}
	if input.Location != nil {
		warehouse.Location = input.Location
	}

	updated, err := s.repo.Update(ctx, warehouse)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update warehouse")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup warehouse")
	}

	if err := s.repo.Delete(ctx, warehouseID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete warehouse")
	}
	return nil
}

func (s *service) GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseDTO, error) {
	warehouse, err := s.repo.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup warehouse")
	}
	return FromModel(warehouse), nil
}

func (s *service) ListWarehouses(ctx context.Context) ([]WarehouseDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouses")
	}
	out := make([]WarehouseDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
