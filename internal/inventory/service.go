package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// Service exposes the read side of the stock ledger.
type Service interface {
	Levels(ctx context.Context, warehouseID *uuid.UUID) ([]StockLevelDTO, error)
	Level(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevelDTO, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	MovementsForProduct(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID, limit int) ([]MovementDTO, error)
	Dashboard(ctx context.Context) (*DashboardDTO, error)
}

// DashboardDTO aggregates the headline numbers for the overview screen.
type DashboardDTO struct {
	ProductCount    int64         `json:"product_count"`
	WarehouseCount  int64         `json:"warehouse_count"`
	LowStockCount   int           `json:"low_stock_count"`
	RecentMovements []MovementDTO `json:"recent_movements"`
}

type service struct {
	repo *Repository
}

// NewService constructs the inventory read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Levels(ctx context.Context, warehouseID *uuid.UUID) ([]StockLevelDTO, error) {
	rows, err := s.repo.ListLevels(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stock levels")
	}
	out := make([]StockLevelDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *LevelFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Level(ctx context.Context, productID, warehouseID uuid.UUID) (*StockLevelDTO, error) {
	level, err := s.repo.GetLevel(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock level not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock level")
	}
	return LevelFromModel(level), nil
}

func (s *service) LowStock(ctx context.Context) ([]LowStockRow, error) {
	rows, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock")
	}
	return rows, nil
}

func (s *service) MovementsForProduct(ctx context.Context, productID uuid.UUID, warehouseID *uuid.UUID, limit int) ([]MovementDTO, error) {
	rows, err := s.repo.ListMovementsByProduct(ctx, productID, warehouseID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list movements")
	}
	out := make([]MovementDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *MovementFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	productCount, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	warehouseCount, err := s.repo.CountWarehouses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count warehouses")
	}
	lowStock, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock")
	}
	recent, err := s.repo.ListRecentMovements(ctx, 10)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent movements")
	}

	movements := make([]MovementDTO, 0, len(recent))
	for i := range recent {
		movements = append(movements, *MovementFromModel(&recent[i]))
	}

	return &DashboardDTO{
		ProductCount:    productCount,
		WarehouseCount:  warehouseCount,
		LowStockCount:   len(lowStock),
		RecentMovements: movements,
	}, nil
}
