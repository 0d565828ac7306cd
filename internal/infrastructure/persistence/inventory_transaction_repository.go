package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements the append-only transaction
// log using GORM. Records are only ever created, never updated or deleted.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Save appends a transaction record
func (r *GormInventoryTransactionRepository) Save(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// SaveBatch appends multiple transaction records
func (r *GormInventoryTransactionRepository) SaveBatch(ctx context.Context, txs []*inventory.InventoryTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(txs).Error
}

// FindByID finds a transaction by its ID
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var tx inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindByWarehouse finds transactions for a warehouse
func (r *GormInventoryTransactionRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}).
			Where("warehouse_id = ?", warehouseID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByProduct finds transactions for a product
func (r *GormInventoryTransactionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAll finds transactions matching the filter
func (r *GormInventoryTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryTransaction, error) {
	var txs []inventory.InventoryTransaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Count counts transactions matching the filter
func (r *GormInventoryTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)
	query = orderedBy(query, filter, TransactionSortFields, "transaction_date")
	return paginate(query, filter)
}

func (r *GormInventoryTransactionRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "transaction_type":
			query = query.Where("transaction_type = ?", value)
		case "source_type":
			query = query.Where("source_type = ?", value)
		case "source_id":
			query = query.Where("source_id = ?", value)
		case "from":
			query = query.Where("transaction_date >= ?", value)
		case "to":
			query = query.Where("transaction_date <= ?", value)
		}
	}
	return query
}

// Ensure GormInventoryTransactionRepository implements InventoryTransactionRepository
var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
