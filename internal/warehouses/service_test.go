package warehouses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:warehouses_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Warehouse{}); err != nil {
		t.Fatalf("migrate warehouses: %v", err)
	}

	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceCreateListAndGetWarehouse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	location := "North Dock 3"
	created, err := svc.CreateWarehouse(ctx, CreateWarehouseInput{
		Name:     "Central",
		Location: &location,
	})
	if err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	got, err := svc.GetWarehouse(ctx, created.ID)
	if err != nil {
		t.Fatalf("get warehouse: %v", err)
	}
	if got.Name != "Central" || got.Location == nil || *got.Location != location {
		t.Fatalf("unexpected warehouse: %+v", got)
	}

	listed, err := svc.ListWarehouses(ctx)
	if err != nil {
		t.Fatalf("list warehouses: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 warehouse, got %d", len(listed))
	}
}

func TestServiceCreateWarehouseRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateWarehouse(context.Background(), CreateWarehouseInput{Name: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateWarehouse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateWarehouse(ctx, CreateWarehouseInput{Name: "Old Name"})
	if err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	name := "New Name"
	updated, err := svc.UpdateWarehouse(ctx, created.ID, UpdateWarehouseInput{Name: &name})
	if err != nil {
		t.Fatalf("update warehouse: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("unexpected warehouse after update: %+v", updated)
	}
}

func TestServiceDeleteWarehouseNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteWarehouse(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
