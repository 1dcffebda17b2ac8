package operations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

type testEnv struct {
	conn       *gorm.DB
	svc        Service
	userID     uuid.UUID
	productID  uuid.UUID
	warehouseA uuid.UUID
	warehouseB uuid.UUID
	extraProd  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:operations_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Warehouse{},
		&models.StockLevel{},
		&models.StockMovement{},
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.DeliveryOrder{},
		&models.DeliveryOrderItem{},
		&models.InternalTransfer{},
		&models.InternalTransferItem{},
		&models.StockAdjustment{},
		&models.StockAdjustmentItem{},
	); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("extract sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	env := &testEnv{
		conn:       conn,
		userID:     uuid.New(),
		productID:  uuid.New(),
		warehouseA: uuid.New(),
		warehouseB: uuid.New(),
		extraProd:  uuid.New(),
	}

	seed := []any{
		&models.User{ID: env.userID, Name: "Ops", Email: "ops@example.com", PasswordHash: "x", Role: enums.UserRoleStaff},
		&models.Product{ID: env.productID, Name: "Hex Bolt", SKU: "HB-1"},
		&models.Product{ID: env.extraProd, Name: "Washer", SKU: "WS-1"},
		&models.Warehouse{ID: env.warehouseA, Name: "A"},
		&models.Warehouse{ID: env.warehouseB, Name: "B"},
	}
	for _, row := range seed {
		if err := conn.Create(row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc, err := NewService(ServiceParams{
		DB:   db.FromGorm(conn),
		Repo: NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	env.svc = svc
	return env
}

func (e *testEnv) levelQuantity(t *testing.T, productID, warehouseID uuid.UUID) int {
	t.Helper()
	var level models.StockLevel
	err := e.conn.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	if err != nil {
		t.Fatalf("read level: %v", err)
	}
	return level.Quantity
}

func (e *testEnv) movementCount(t *testing.T, referenceID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := e.conn.Model(&models.StockMovement{}).Where("reference_id = ?", referenceID).Count(&count).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	return count
}

func TestCreateReceiptAppliesMovements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	receipt, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Supplier: "Acme Metals",
		Items: []ItemInput{
			{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 30},
			{ProductID: env.extraProd, WarehouseID: env.warehouseA, Quantity: 12},
		},
	})
	if err != nil {
		t.Fatalf("create receipt: %v", err)
	}

	if !strings.HasPrefix(receipt.Reference, "REC-") {
		t.Fatalf("unexpected reference %q", receipt.Reference)
	}
	if receipt.Status != enums.DocumentStatusDone {
		t.Fatalf("expected done status, got %s", receipt.Status)
	}
	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != 30 {
		t.Fatalf("expected 30 on hand, got %d", got)
	}
	if got := env.movementCount(t, receipt.ID); got != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", got)
	}
}

func TestCreateReceiptRollsBackOnMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{
			{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 10},
			{ProductID: uuid.New(), WarehouseID: env.warehouseA, Quantity: 5},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}

	var headerCount int64
	if err := env.conn.Model(&models.Receipt{}).Count(&headerCount).Error; err != nil {
		t.Fatalf("count receipts: %v", err)
	}
	if headerCount != 0 {
		t.Fatalf("expected no receipt header after rollback, got %d", headerCount)
	}
	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != 0 {
		t.Fatalf("expected untouched stock after rollback, got %d", got)
	}
	var movementCount int64
	if err := env.conn.Model(&models.StockMovement{}).Count(&movementCount).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if movementCount != 0 {
		t.Fatalf("expected no ledger rows after rollback, got %d", movementCount)
	}
}

func TestCreateReceiptValidationAccumulates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateReceipt(context.Background(), env.userID, CreateReceiptInput{
		Items: []ItemInput{
			{Quantity: -1},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().([]string)
	if !ok || len(details) != 3 {
		t.Fatalf("expected 3 accumulated problems, got %v", typed.Details())
	}
}

func TestCreateDeliveryDrivesStockDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 10}},
	}); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}

	delivery, err := env.svc.CreateDelivery(ctx, env.userID, CreateDeliveryInput{
		Customer: "Retailer GmbH",
		Items:    []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 25}},
	})
	if err != nil {
		t.Fatalf("create delivery: %v", err)
	}
	if !strings.HasPrefix(delivery.Reference, "DO-") {
		t.Fatalf("unexpected reference %q", delivery.Reference)
	}

	// Stock is allowed to go negative; the ledger records the shortfall.
	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != -15 {
		t.Fatalf("expected -15 on hand, got %d", got)
	}

	var movement models.StockMovement
	if err := env.conn.Where("reference_id = ?", delivery.ID).First(&movement).Error; err != nil {
		t.Fatalf("read movement: %v", err)
	}
	if movement.QuantityChange != -25 || movement.QuantityAfter != -15 {
		t.Fatalf("unexpected movement %+v", movement)
	}
}

func TestCreateTransferMovesStockBetweenWarehouses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 50}},
	}); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}

	transfer, err := env.svc.CreateTransfer(ctx, env.userID, CreateTransferInput{
		FromWarehouseID: env.warehouseA,
		ToWarehouseID:   env.warehouseB,
		Items:           []TransferItemInput{{ProductID: env.productID, Quantity: 20}},
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if !strings.HasPrefix(transfer.Reference, "TRF-") {
		t.Fatalf("unexpected reference %q", transfer.Reference)
	}

	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != 30 {
		t.Fatalf("expected 30 at source, got %d", got)
	}
	if got := env.levelQuantity(t, env.productID, env.warehouseB); got != 20 {
		t.Fatalf("expected 20 at destination, got %d", got)
	}

	// A transfer line writes a matched pair of ledger rows that sum to zero.
	var changes []int
	if err := env.conn.Model(&models.StockMovement{}).
		Where("reference_id = ?", transfer.ID).
		Order("quantity_change ASC").
		Pluck("quantity_change", &changes).Error; err != nil {
		t.Fatalf("read movements: %v", err)
	}
	if len(changes) != 2 || changes[0] != -20 || changes[1] != 20 {
		t.Fatalf("expected matched pair -20/+20, got %v", changes)
	}
}

func TestCreateTransferRejectsSameWarehouse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateTransfer(context.Background(), env.userID, CreateTransferInput{
		FromWarehouseID: env.warehouseA,
		ToWarehouseID:   env.warehouseA,
		Items:           []TransferItemInput{{ProductID: env.productID, Quantity: 5}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateAdjustmentRecordsDeltas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 40}},
	}); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}

	adjustment, err := env.svc.CreateAdjustment(ctx, env.userID, CreateAdjustmentInput{
		Reason: "cycle count",
		Items: []AdjustmentItemInput{
			{ProductID: env.productID, WarehouseID: env.warehouseA, CountedQuantity: 37},
		},
	})
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if !strings.HasPrefix(adjustment.Reference, "ADJ-") {
		t.Fatalf("unexpected reference %q", adjustment.Reference)
	}
	if len(adjustment.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(adjustment.Items))
	}
	item := adjustment.Items[0]
	if item.QuantityBefore != 40 || item.QuantityAfter != 37 {
		t.Fatalf("unexpected before/after: %+v", item)
	}

	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != 37 {
		t.Fatalf("expected 37 on hand, got %d", got)
	}

	var movement models.StockMovement
	if err := env.conn.Where("reference_id = ?", adjustment.ID).First(&movement).Error; err != nil {
		t.Fatalf("read movement: %v", err)
	}
	if movement.QuantityChange != -3 {
		t.Fatalf("expected -3 change, got %d", movement.QuantityChange)
	}
}

func TestCreateAdjustmentEqualCountStaysSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 15}},
	}); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}

	adjustment, err := env.svc.CreateAdjustment(ctx, env.userID, CreateAdjustmentInput{
		Reason: "cycle count",
		Items: []AdjustmentItemInput{
			{ProductID: env.productID, WarehouseID: env.warehouseA, CountedQuantity: 15},
		},
	})
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}

	// Header and line persist, but the ledger receives nothing.
	if got := env.movementCount(t, adjustment.ID); got != 0 {
		t.Fatalf("expected no ledger rows for equal count, got %d", got)
	}
	if got := env.levelQuantity(t, env.productID, env.warehouseA); got != 15 {
		t.Fatalf("expected unchanged stock, got %d", got)
	}
}

func TestCreateAdjustmentZeroCountOnFreshPairLeavesNoLevelRow(t *testing.T) {
	env := newTestEnv(t)

	adjustment, err := env.svc.CreateAdjustment(context.Background(), env.userID, CreateAdjustmentInput{
		Reason: "cycle count",
		Items: []AdjustmentItemInput{
			{ProductID: env.extraProd, WarehouseID: env.warehouseB, CountedQuantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if adjustment.Items[0].QuantityBefore != 0 || adjustment.Items[0].QuantityAfter != 0 {
		t.Fatalf("unexpected before/after: %+v", adjustment.Items[0])
	}

	if got := env.movementCount(t, adjustment.ID); got != 0 {
		t.Fatalf("expected no ledger rows for equal count, got %d", got)
	}

	// A confirming count on a pair that never moved must not materialize a
	// zero-quantity level row.
	var levels int64
	if err := env.conn.Model(&models.StockLevel{}).
		Where("product_id = ? AND warehouse_id = ?", env.extraProd, env.warehouseB).
		Count(&levels).Error; err != nil {
		t.Fatalf("count levels: %v", err)
	}
	if levels != 0 {
		t.Fatalf("expected no level row, got %d", levels)
	}
}

func TestCreateAdjustmentOnNeverMovedPair(t *testing.T) {
	env := newTestEnv(t)

	adjustment, err := env.svc.CreateAdjustment(context.Background(), env.userID, CreateAdjustmentInput{
		Items: []AdjustmentItemInput{
			{ProductID: env.productID, WarehouseID: env.warehouseB, CountedQuantity: 8},
		},
	})
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if adjustment.Items[0].QuantityBefore != 0 {
		t.Fatalf("expected zero before on fresh pair, got %d", adjustment.Items[0].QuantityBefore)
	}
	if got := env.levelQuantity(t, env.productID, env.warehouseB); got != 8 {
		t.Fatalf("expected 8 on hand, got %d", got)
	}
}

func TestRollbackDiscardsPersistedRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	repo := NewRepository(env.conn)
	failure := errors.New("post-movement failure")

	// Persist a full document and a ledger movement inside the transaction,
	// then fail: nothing written before the error may survive.
	err := db.FromGorm(env.conn).WithTx(ctx, func(tx *gorm.DB) error {
		receipt := &models.Receipt{
			ID:        uuid.New(),
			Reference: "REC-20260101000000-ROLLBK",
			Status:    enums.DocumentStatusDone,
			CreatedBy: env.userID,
			Items: []models.ReceiptItem{{
				ID:          uuid.New(),
				ProductID:   env.productID,
				WarehouseID: env.warehouseA,
				Quantity:    9,
			}},
		}
		if err := repo.WithTx(tx).CreateReceipt(ctx, receipt); err != nil {
			return err
		}
		if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
			ProductID:      env.productID,
			WarehouseID:    env.warehouseA,
			MovementType:   enums.MovementTypeReceipt,
			ReferenceID:    receipt.ID,
			QuantityChange: 9,
		}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected injected failure, got %v", err)
	}

	for _, table := range []any{
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.StockLevel{},
		&models.StockMovement{},
	} {
		var count int64
		if err := env.conn.Model(table).Count(&count).Error; err != nil {
			t.Fatalf("count %T: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %T empty after rollback, got %d rows", table, count)
		}
	}
}

func TestListDocuments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateReceipt(ctx, env.userID, CreateReceiptInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 5}},
	}); err != nil {
		t.Fatalf("create receipt: %v", err)
	}
	if _, err := env.svc.CreateDelivery(ctx, env.userID, CreateDeliveryInput{
		Items: []ItemInput{{ProductID: env.productID, WarehouseID: env.warehouseA, Quantity: 2}},
	}); err != nil {
		t.Fatalf("create delivery: %v", err)
	}

	receipts, err := env.svc.ListReceipts(ctx, 10)
	if err != nil {
		t.Fatalf("list receipts: %v", err)
	}
	if len(receipts) != 1 || len(receipts[0].Items) != 1 {
		t.Fatalf("unexpected receipts: %+v", receipts)
	}

	deliveries, err := env.svc.ListDeliveries(ctx, 10)
	if err != nil {
		t.Fatalf("list deliveries: %v", err)
	}
	if len(deliveries) != 1 {
		t.Fatalf("unexpected deliveries: %+v", deliveries)
	}
}

func TestDuplicateReferenceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	repo := NewRepository(env.conn)

	first := &models.Receipt{
		ID:        uuid.New(),
		Reference: "REC-20260101000000-AAAAAA",
		Status:    enums.DocumentStatusDone,
		CreatedBy: env.userID,
	}
	if err := repo.CreateReceipt(ctx, first); err != nil {
		t.Fatalf("create first receipt: %v", err)
	}

	second := &models.Receipt{
		ID:        uuid.New(),
		Reference: first.Reference,
		Status:    enums.DocumentStatusDone,
		CreatedBy: env.userID,
	}
	err := repo.CreateReceipt(ctx, second)
	if err == nil {
		t.Fatal("expected unique violation for duplicate reference")
	}

	typed := pkgerrors.As(classifyCreateError(err, "create receipt"))
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}
