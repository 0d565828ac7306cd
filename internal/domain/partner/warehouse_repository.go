package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID, with managers loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByCode finds a warehouse by its code
	FindByCode(ctx context.Context, code string) (*Warehouse, error)

	// FindAll finds all warehouses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)

	// FindManagedBy finds all warehouses managed by the given user
	FindManagedBy(ctx context.Context, userID uuid.UUID) ([]Warehouse, error)

	// Save creates or updates a warehouse, including its manager set
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete deletes a warehouse
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts warehouses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a warehouse with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
