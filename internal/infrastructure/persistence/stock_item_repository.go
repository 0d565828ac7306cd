package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByWarehouseAndProduct finds the stock item for a warehouse-product pair
func (r *GormStockItemRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByWarehouse finds all stock items in a warehouse
func (r *GormStockItemRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	query := paginate(
		r.db.WithContext(ctx).Model(&inventory.StockItem{}).
			Where("warehouse_id = ?", warehouseID).
			Order("created_at DESC"),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByProduct finds all stock items for a product across warehouses
func (r *GormStockItemRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	query := paginate(
		r.db.WithContext(ctx).Model(&inventory.StockItem{}).
			Where("product_id = ?", productID).
			Order("created_at DESC"),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetOrCreate finds the stock item for the pair, creating a zero-quantity
// item when absent. A concurrent insert surfaces as a unique violation,
// retried as a lookup.
func (r *GormStockItemRepository) GetOrCreate(ctx context.Context, warehouseID, productID uuid.UUID) (*inventory.StockItem, error) {
	item, err := r.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := inventory.NewStockItem(warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByWarehouseAndProduct(ctx, warehouseID, productID)
		}
		return nil, err
	}
	return fresh, nil
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock updates a stock item with optimistic lock checking. The
// domain increments the version before the call, so the stored row must
// still hold the previous version.
func (r *GormStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"quantity":   item.Quantity,
			"version":    item.Version,
			"updated_at": item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Stock item was modified by another transaction")
	}
	return nil
}

// SumQuantityByProduct returns the total quantity of a product across warehouses
func (r *GormStockItemRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("product_id = ?", productID).
		Select("SUM(quantity)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SummarizeWarehouse computes total quantity and value for a warehouse,
// valuing each line at the product's current price
func (r *GormStockItemRepository) SummarizeWarehouse(ctx context.Context, warehouseID uuid.UUID) (*inventory.WarehouseStockSummary, error) {
	var row struct {
		TotalQuantity decimal.NullDecimal
		TotalValue    decimal.NullDecimal
	}

	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Joins("JOIN products ON products.id = stock_items.product_id").
		Where("stock_items.warehouse_id = ?", warehouseID).
		Select("SUM(stock_items.quantity) AS total_quantity, SUM(stock_items.quantity * products.price) AS total_value").
		Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &inventory.WarehouseStockSummary{
		WarehouseID:   warehouseID,
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	if row.TotalQuantity.Valid {
		summary.TotalQuantity = row.TotalQuantity.Decimal
	}
	if row.TotalValue.Valid {
		summary.TotalValue = row.TotalValue.Decimal
	}
	return summary, nil
}

// CountByWarehouse counts stock items in a warehouse
func (r *GormStockItemRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProduct counts stock items referencing a product
func (r *GormStockItemRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a stock item
func (r *GormStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
