package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseStockSummary aggregates a warehouse's stock across all products.
// TotalValue is computed against current product prices at query time.
type WarehouseStockSummary struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// StockItemRepository defines the interface for stock item persistence
type StockItemRepository interface {
	// FindByID finds a stock item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)

	// FindByWarehouseAndProduct finds the stock item for a warehouse-product pair
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*StockItem, error)

	// FindByWarehouse finds all stock items in a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]StockItem, error)

	// FindByProduct finds all stock items for a product across warehouses
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockItem, error)

	// GetOrCreate finds the stock item for the pair, creating a zero-quantity
	// item when absent
	GetOrCreate(ctx context.Context, warehouseID, productID uuid.UUID) (*StockItem, error)

	// Save creates or updates a stock item
	Save(ctx context.Context, item *StockItem) error

	// SaveWithLock updates a stock item with optimistic lock checking.
	// Returns CONCURRENCY_CONFLICT when the stored version moved on.
	SaveWithLock(ctx context.Context, item *StockItem) error

	// SumQuantityByProduct returns the total quantity of a product across warehouses
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)

	// SummarizeWarehouse computes total quantity and value for a warehouse,
	// valuing each line at the product's current price
	SummarizeWarehouse(ctx context.Context, warehouseID uuid.UUID) (*WarehouseStockSummary, error)

	// CountByWarehouse counts stock items in a warehouse
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)

	// CountByProduct counts stock items referencing a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Delete deletes a stock item
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryTransactionRepository defines the interface for the append-only
// transaction log
type InventoryTransactionRepository interface {
	// Save appends a transaction record
	Save(ctx context.Context, tx *InventoryTransaction) error

	// SaveBatch appends multiple transaction records
	SaveBatch(ctx context.Context, txs []*InventoryTransaction) error

	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)

	// FindByWarehouse finds transactions for a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)

	// FindByProduct finds transactions for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]InventoryTransaction, error)

	// FindAll finds transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryTransaction, error)

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
