package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.ProductCategory{}, &models.Product{}); err != nil {
		t.Fatalf("migrate catalog: %v", err)
	}

	svc, err := NewService(NewRepository(conn), db.FromGorm(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceCreateAndGetProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Fasteners"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:          "Hex Bolt M8",
		SKU:           "HB-M8",
		CategoryID:    &category.ID,
		UnitOfMeasure: "pcs",
		MinStockLevel: 50,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.SKU != "HB-M8" || got.MinStockLevel != 50 {
		t.Fatalf("unexpected product: %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != category.ID {
		t.Fatalf("expected category %s, got %+v", category.ID, got.CategoryID)
	}
}

func TestServiceCreateProductDuplicateSKU(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Bolt", SKU: "DUP-1"}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Other Bolt", SKU: "DUP-1"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceCreateProductUnknownCategory(t *testing.T) {
	svc := newTestService(t)

	missing := uuid.New()
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Bolt",
		SKU:        "CAT-MISSING",
		CategoryID: &missing,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceUpdateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Bolt", SKU: "UPD-1"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	name := "Bolt Galvanized"
	minLevel := 25
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:          &name,
		MinStockLevel: &minLevel,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Name != name || updated.MinStockLevel != 25 {
		t.Fatalf("unexpected product after update: %+v", updated)
	}
}

func TestServiceUpdateProductNotFound(t *testing.T) {
	svc := newTestService(t)

	name := "Ghost"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Bolt", SKU: "DEL-1"})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	_, err = svc.GetProduct(ctx, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestServiceListProducts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, sku := range []string{"L-1", "L-2", "L-3"} {
		if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Item " + sku, SKU: sku}); err != nil {
			t.Fatalf("create product %s: %v", sku, err)
		}
	}

	listed, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 products, got %d", len(listed))
	}
}
