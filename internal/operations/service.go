package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/stockmasterhq/stockmaster-backend/internal/inventory"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db"
	"github.com/stockmasterhq/stockmaster-backend/pkg/db/models"
	"github.com/stockmasterhq/stockmaster-backend/pkg/enums"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/metrics"
)

// Service records the four stock operations. Each call persists the document
// header with its lines and applies the matching ledger movements in one
// transaction; on any failure nothing is kept.
type Service interface {
	CreateReceipt(ctx context.Context, userID uuid.UUID, input CreateReceiptInput) (*ReceiptDTO, error)
	CreateDelivery(ctx context.Context, userID uuid.UUID, input CreateDeliveryInput) (*DeliveryDTO, error)
	CreateTransfer(ctx context.Context, userID uuid.UUID, input CreateTransferInput) (*TransferDTO, error)
	CreateAdjustment(ctx context.Context, userID uuid.UUID, input CreateAdjustmentInput) (*AdjustmentDTO, error)
	ListReceipts(ctx context.Context, limit int) ([]ReceiptDTO, error)
	ListDeliveries(ctx context.Context, limit int) ([]DeliveryDTO, error)
	ListTransfers(ctx context.Context, limit int) ([]TransferDTO, error)
	ListAdjustments(ctx context.Context, limit int) ([]AdjustmentDTO, error)
}

type service struct {
	dbClient *db.Client
	repo     *Repository
	metrics  *metrics.LedgerMetrics
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build the operations service.
type ServiceParams struct {
	DB      *db.Client
	Repo    *Repository
	Metrics *metrics.LedgerMetrics
	Now     func() time.Time
}

// NewService constructs the operations service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("operations repository required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		dbClient: params.DB,
		repo:     params.Repo,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

func (s *service) CreateReceipt(ctx context.Context, userID uuid.UUID, input CreateReceiptInput) (*ReceiptDTO, error) {
	start := s.now()
	if err := validateItems(input.Items); err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeReceipt))
		return nil, err
	}

	reference, err := GenerateReference(ReceiptPrefix, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reference")
	}

	receipt := &models.Receipt{
		ID:        uuid.New(),
		Reference: reference,
		Supplier:  strings.TrimSpace(input.Supplier),
		Status:    enums.DocumentStatusDone,
		CreatedBy: userID,
	}
	for _, item := range input.Items {
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			ID:          uuid.New(),
			ReceiptID:   receipt.ID,
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
		})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := ensureItemTargets(ctx, tx, input.Items); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).CreateReceipt(ctx, receipt); err != nil {
			return classifyCreateError(err, "create receipt")
		}
		for _, item := range input.Items {
			if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
				ProductID:      item.ProductID,
				WarehouseID:    item.WarehouseID,
				MovementType:   enums.MovementTypeReceipt,
				ReferenceID:    receipt.ID,
				QuantityChange: item.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeReceipt))
		return nil, err
	}

	s.metrics.ObserveOperation(string(enums.MovementTypeReceipt), s.now().Sub(start))
	s.metrics.IncMovements(string(enums.MovementTypeReceipt), len(input.Items))
	return receiptFromModel(receipt), nil
}

func (s *service) CreateDelivery(ctx context.Context, userID uuid.UUID, input CreateDeliveryInput) (*DeliveryDTO, error) {
	start := s.now()
	if err := validateItems(input.Items); err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeDelivery))
		return nil, err
	}

	reference, err := GenerateReference(DeliveryPrefix, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reference")
	}

	order := &models.DeliveryOrder{
		ID:        uuid.New(),
		Reference: reference,
		Customer:  strings.TrimSpace(input.Customer),
		Status:    enums.DocumentStatusDone,
		CreatedBy: userID,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.DeliveryOrderItem{
			ID:              uuid.New(),
			DeliveryOrderID: order.ID,
			ProductID:       item.ProductID,
			WarehouseID:     item.WarehouseID,
			Quantity:        item.Quantity,
		})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := ensureItemTargets(ctx, tx, input.Items); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).CreateDeliveryOrder(ctx, order); err != nil {
			return classifyCreateError(err, "create delivery order")
		}
		for _, item := range input.Items {
			if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
				ProductID:      item.ProductID,
				WarehouseID:    item.WarehouseID,
				MovementType:   enums.MovementTypeDelivery,
				ReferenceID:    order.ID,
				QuantityChange: -item.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeDelivery))
		return nil, err
	}

	s.metrics.ObserveOperation(string(enums.MovementTypeDelivery), s.now().Sub(start))
	s.metrics.IncMovements(string(enums.MovementTypeDelivery), len(input.Items))
	return deliveryFromModel(order), nil
}

func (s *service) CreateTransfer(ctx context.Context, userID uuid.UUID, input CreateTransferInput) (*TransferDTO, error) {
	start := s.now()

	var verr error
	if input.FromWarehouseID == uuid.Nil {
		verr = multierr.Append(verr, errors.New("from_warehouse_id is required"))
	}
	if input.ToWarehouseID == uuid.Nil {
		verr = multierr.Append(verr, errors.New("to_warehouse_id is required"))
	}
	if input.FromWarehouseID != uuid.Nil && input.FromWarehouseID == input.ToWarehouseID {
		verr = multierr.Append(verr, errors.New("source and destination warehouses must differ"))
	}
	if len(input.Items) == 0 {
		verr = multierr.Append(verr, errors.New("at least one item is required"))
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: product_id is required", i))
		}
		if item.Quantity <= 0 {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: quantity must be positive", i))
		}
	}
	if verr != nil {
		s.metrics.IncFailure(string(enums.MovementTypeTransfer))
		return nil, validationError(verr)
	}

	reference, err := GenerateReference(TransferPrefix, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reference")
	}

	transfer := &models.InternalTransfer{
		ID:              uuid.New(),
		Reference:       reference,
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		Status:          enums.DocumentStatusDone,
		CreatedBy:       userID,
	}
	for _, item := range input.Items {
		transfer.Items = append(transfer.Items, models.InternalTransferItem{
			ID:         uuid.New(),
			TransferID: transfer.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := ensureWarehouses(ctx, tx, input.FromWarehouseID, input.ToWarehouseID); err != nil {
			return err
		}
		for _, item := range input.Items {
			if err := ensureProduct(ctx, tx, item.ProductID); err != nil {
				return err
			}
		}
		if err := s.repo.WithTx(tx).CreateTransfer(ctx, transfer); err != nil {
			return classifyCreateError(err, "create transfer")
		}
		for _, item := range input.Items {
			if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
				ProductID:      item.ProductID,
				WarehouseID:    input.FromWarehouseID,
				MovementType:   enums.MovementTypeTransfer,
				ReferenceID:    transfer.ID,
				QuantityChange: -item.Quantity,
			}); err != nil {
				return err
			}
			if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
				ProductID:      item.ProductID,
				WarehouseID:    input.ToWarehouseID,
				MovementType:   enums.MovementTypeTransfer,
				ReferenceID:    transfer.ID,
				QuantityChange: item.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeTransfer))
		return nil, err
	}

	s.metrics.ObserveOperation(string(enums.MovementTypeTransfer), s.now().Sub(start))
	s.metrics.IncMovements(string(enums.MovementTypeTransfer), len(input.Items)*2)
	return transferFromModel(transfer), nil
}

func (s *service) CreateAdjustment(ctx context.Context, userID uuid.UUID, input CreateAdjustmentInput) (*AdjustmentDTO, error) {
	start := s.now()

	var verr error
	if len(input.Items) == 0 {
		verr = multierr.Append(verr, errors.New("at least one item is required"))
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: product_id is required", i))
		}
		if item.WarehouseID == uuid.Nil {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: warehouse_id is required", i))
		}
	}
	if verr != nil {
		s.metrics.IncFailure(string(enums.MovementTypeAdjustment))
		return nil, validationError(verr)
	}

	reference, err := GenerateReference(AdjustmentPrefix, start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reference")
	}

	adjustment := &models.StockAdjustment{
		ID:        uuid.New(),
		Reference: reference,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    enums.DocumentStatusDone,
		CreatedBy: userID,
	}

	var applied int
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		for _, item := range input.Items {
			if err := ensureProduct(ctx, tx, item.ProductID); err != nil {
				return err
			}
			if err := ensureWarehouse(ctx, tx, item.WarehouseID); err != nil {
				return err
			}
		}

		repo := s.repo.WithTx(tx)

		// Items carry the observed before quantity, so the level rows are
		// locked and read before the header lines are final. A pair that has
		// never moved only gets its zero row when the count actually differs.
		for _, item := range input.Items {
			before, found, err := inventory.PeekLevel(ctx, tx, item.ProductID, item.WarehouseID)
			if err != nil {
				return err
			}
			if !found && item.CountedQuantity != 0 {
				level, err := inventory.LockLevel(ctx, tx, item.ProductID, item.WarehouseID)
				if err != nil {
					return err
				}
				before = level.Quantity
			}
			adjustment.Items = append(adjustment.Items, models.StockAdjustmentItem{
				ID:             uuid.New(),
				AdjustmentID:   adjustment.ID,
				ProductID:      item.ProductID,
				WarehouseID:    item.WarehouseID,
				QuantityBefore: before,
				QuantityAfter:  item.CountedQuantity,
			})
		}

		if err := repo.CreateAdjustment(ctx, adjustment); err != nil {
			return classifyCreateError(err, "create adjustment")
		}

		// Lines whose counted quantity matches the ledger stay silent: the
		// document records the count, the ledger records nothing.
		for _, line := range adjustment.Items {
			delta := line.QuantityAfter - line.QuantityBefore
			if delta == 0 {
				continue
			}
			if _, err := inventory.ApplyMovement(ctx, tx, inventory.Movement{
				ProductID:      line.ProductID,
				WarehouseID:    line.WarehouseID,
				MovementType:   enums.MovementTypeAdjustment,
				ReferenceID:    adjustment.ID,
				QuantityChange: delta,
			}); err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(string(enums.MovementTypeAdjustment))
		return nil, err
	}

	s.metrics.ObserveOperation(string(enums.MovementTypeAdjustment), s.now().Sub(start))
	s.metrics.IncMovements(string(enums.MovementTypeAdjustment), applied)
	return adjustmentFromModel(adjustment), nil
}

func (s *service) ListReceipts(ctx context.Context, limit int) ([]ReceiptDTO, error) {
	rows, err := s.repo.ListReceipts(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list receipts")
	}
	out := make([]ReceiptDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *receiptFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListDeliveries(ctx context.Context, limit int) ([]DeliveryDTO, error) {
	rows, err := s.repo.ListDeliveryOrders(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list delivery orders")
	}
	out := make([]DeliveryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *deliveryFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListTransfers(ctx context.Context, limit int) ([]TransferDTO, error) {
	rows, err := s.repo.ListTransfers(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transfers")
	}
	out := make([]TransferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *transferFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListAdjustments(ctx context.Context, limit int) ([]AdjustmentDTO, error) {
	rows, err := s.repo.ListAdjustments(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list adjustments")
	}
	out := make([]AdjustmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *adjustmentFromModel(&rows[i]))
	}
	return out, nil
}

func validateItems(items []ItemInput) error {
	var verr error
	if len(items) == 0 {
		verr = multierr.Append(verr, errors.New("at least one item is required"))
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: product_id is required", i))
		}
		if item.WarehouseID == uuid.Nil {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: warehouse_id is required", i))
		}
		if item.Quantity <= 0 {
			verr = multierr.Append(verr, fmt.Errorf("items[%d]: quantity must be positive", i))
		}
	}
	if verr != nil {
		return validationError(verr)
	}
	return nil
}

func validationError(verr error) error {
	details := make([]string, 0)
	for _, err := range multierr.Errors(verr) {
		details = append(details, err.Error())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid operation payload").WithDetails(details)
}

func ensureItemTargets(ctx context.Context, tx *gorm.DB, items []ItemInput) error {
	for _, item := range items {
		if err := ensureProduct(ctx, tx, item.ProductID); err != nil {
			return err
		}
		if err := ensureWarehouse(ctx, tx, item.WarehouseID); err != nil {
			return err
		}
	}
	return nil
}

func ensureProduct(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	if count == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
	}
	return nil
}

func ensureWarehouse(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Warehouse{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup warehouse")
	}
	if count == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("warehouse %s not found", id))
	}
	return nil
}

func ensureWarehouses(ctx context.Context, tx *gorm.DB, ids ...uuid.UUID) error {
	for _, id := range ids {
		if err := ensureWarehouse(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func classifyCreateError(err error, action string) error {
	if db.IsUniqueViolation(err, "reference") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "document reference already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
