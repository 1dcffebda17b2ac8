package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
)

// Movement captures one signed quantity change to apply to the ledger.
type Movement struct {
	ProductID      uuid.UUID
	WarehouseID    uuid.UUID
	MovementType   enums.MovementType
	ReferenceID    uuid.UUID
	QuantityChange int
}

// ApplyMovement mutates the stock level for the (product, warehouse) pair and
// appends the matching ledger row, inside the caller's transaction. The level
// row is locked for the duration of the transaction so concurrent movements
// against the same pair serialize; the level row is created at quantity zero
// when the pair has never moved before.
func ApplyMovement(ctx context.Context, tx *gorm.DB, input Movement) (*models.StockMovement, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id is required")
	}
	if input.ReferenceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference id is required")
	}
	if !input.MovementType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type")
	}
	if input.QuantityChange == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity change cannot be zero")
	}

	level, err := LockLevel(ctx, tx, input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	level.Quantity += input.QuantityChange
	level.UpdatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Save(level).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stock level")
	}

	movement := &models.StockMovement{
		ID:             uuid.New(),
		ProductID:      input.ProductID,
		WarehouseID:    input.WarehouseID,
		MovementType:   input.MovementType,
		ReferenceID:    input.ReferenceID,
		QuantityChange: input.QuantityChange,
		QuantityAfter:  level.Quantity,
	}
	if err := tx.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record stock movement")
	}

	return movement, nil
}

// LockLevel reads the stock level row under a row lock, creating it at zero
// when absent. Callers that need the pre-movement quantity (stock counts) read
// through this before applying deltas. FOR UPDATE locks nothing when the row
// does not exist yet, so the fresh-pair path inserts the zero row with ON
// CONFLICT DO NOTHING and then takes the locked read again: when two
// transactions race to create the same pair, the loser's insert is a no-op
// and its re-read blocks on the winner's row until that transaction commits.
func LockLevel(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID) (*models.StockLevel, error) {
	level, err := lockedRead(ctx, tx, productID, warehouseID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock level")
	}

	if err := seedLevel(ctx, tx, productID, warehouseID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create stock level")
	}

	level, err = lockedRead(ctx, tx, productID, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock level")
	}
	return level, nil
}

// PeekLevel reports the current quantity for the pair under the same lock
// ApplyMovement takes. A missing pair reports zero without creating the row,
// so no-op reads leave no trace in stock_levels.
func PeekLevel(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID) (int, bool, error) {
	level, err := lockedRead(ctx, tx, productID, warehouseID)
	if err == nil {
		return level.Quantity, true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	return 0, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock level")
}

// lockedRead fetches the level row for the pair. The FOR UPDATE clause only
// exists on Postgres; sqlite (used in tests) serializes writers on its own.
func lockedRead(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID) (*models.StockLevel, error) {
	query := tx.WithContext(ctx)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var level models.StockLevel
	err := query.
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// seedLevel inserts the zero-quantity row for the pair unless another
// transaction already has.
func seedLevel(ctx context.Context, tx *gorm.DB, productID, warehouseID uuid.UUID) error {
	seed := models.StockLevel{
		ID:          uuid.New(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    0,
	}
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
			DoNothing: true,
		}).
		Create(&seed).Error
}
