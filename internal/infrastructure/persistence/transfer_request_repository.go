package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/transfer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransferRequestRepository implements TransferRequestRepository using GORM
type GormTransferRequestRepository struct {
	db *gorm.DB
}

// NewGormTransferRequestRepository creates a new GormTransferRequestRepository
func NewGormTransferRequestRepository(db *gorm.DB) *GormTransferRequestRepository {
	return &GormTransferRequestRepository{db: db}
}

// FindByID finds a transfer request by its ID, with items loaded
func (r *GormTransferRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.TransferRequest, error) {
	var request transfer.TransferRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds transfer requests matching the filter
func (r *GormTransferRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]transfer.TransferRequest, error) {
	var requests []transfer.TransferRequest
	query := r.applyFilter(r.db.WithContext(ctx).Model(&transfer.TransferRequest{}), filter)

	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByWarehouse finds transfer requests touching the warehouse on either end
func (r *GormTransferRequestRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]transfer.TransferRequest, error) {
	var requests []transfer.TransferRequest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&transfer.TransferRequest{}).
			Where("from_warehouse_id = ? OR to_warehouse_id = ?", warehouseID, warehouseID),
		filter,
	)

	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByStatus finds transfer requests in the given status
func (r *GormTransferRequestRepository) FindByStatus(ctx context.Context, status transfer.TransferStatus, filter shared.Filter) ([]transfer.TransferRequest, error) {
	var requests []transfer.TransferRequest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&transfer.TransferRequest{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Preload("Items").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a transfer request together with its items
func (r *GormTransferRequestRepository) Save(ctx context.Context, request *transfer.TransferRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(request).Error; err != nil {
			return err
		}
		if len(request.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&request.Items).Error
	})
}

// SaveWithLock updates the request header with optimistic lock checking.
// Items are immutable after submission and are not touched here. The domain
// increments the version before the call, so the stored row must still hold
// the previous version.
func (r *GormTransferRequestRepository) SaveWithLock(ctx context.Context, request *transfer.TransferRequest) error {
	result := r.db.WithContext(ctx).
		Model(request).
		Where("id = ? AND version = ?", request.ID, request.Version-1).
		Updates(map[string]interface{}{
			"status":         request.Status,
			"note":           request.Note,
			"approved_at":    request.ApprovedAt,
			"shipped_at":     request.ShippedAt,
			"completed_at":   request.CompletedAt,
			"declined_at":    request.DeclinedAt,
			"cancelled_at":   request.CancelledAt,
			"failed_at":      request.FailedAt,
			"failure_reason": request.FailureReason,
			"version":        request.Version,
			"updated_at":     request.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Transfer request was modified by another transaction")
	}
	return nil
}

// Count counts transfer requests matching the filter
func (r *GormTransferRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&transfer.TransferRequest{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByWarehouse counts non-terminal requests touching a warehouse
func (r *GormTransferRequestRepository) CountActiveByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&transfer.TransferRequest{}).
		Where("from_warehouse_id = ? OR to_warehouse_id = ?", warehouseID, warehouseID).
		Where("status IN ?", []transfer.TransferStatus{
			transfer.TransferStatusPending,
			transfer.TransferStatusApproved,
			transfer.TransferStatusInTransit,
		}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransferRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)
	query = orderedBy(query, filter, TransferSortFields, "request_date")
	return paginate(query, filter)
}

func (r *GormTransferRequestRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "from_warehouse_id":
			query = query.Where("from_warehouse_id = ?", value)
		case "to_warehouse_id":
			query = query.Where("to_warehouse_id = ?", value)
		case "requested_by":
			query = query.Where("requested_by = ?", value)
		}
	}
	return query
}

// Ensure GormTransferRequestRepository implements TransferRequestRepository
var _ transfer.TransferRequestRepository = (*GormTransferRequestRepository)(nil)
