package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// TransferRequestRepository defines the interface for transfer request persistence
type TransferRequestRepository interface {
	// FindByID finds a transfer request by its ID, with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*TransferRequest, error)

	// FindAll finds transfer requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TransferRequest, error)

	// FindByWarehouse finds transfer requests touching the warehouse on either end
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]TransferRequest, error)

	// FindByStatus finds transfer requests in the given status
	FindByStatus(ctx context.Context, status TransferStatus, filter shared.Filter) ([]TransferRequest, error)

	// Save creates or updates a transfer request, including its items
	Save(ctx context.Context, request *TransferRequest) error

	// SaveWithLock updates a transfer request with optimistic lock checking.
	// Returns CONCURRENCY_CONFLICT when the stored version moved on.
	SaveWithLock(ctx context.Context, request *TransferRequest) error

	// Count counts transfer requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByWarehouse counts non-terminal requests touching a warehouse
	CountActiveByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)
}
