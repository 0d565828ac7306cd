package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/report"
	"gorm.io/gorm"
)

// increaseTypes are the transaction types that add stock; everything else
// in the log removes it.
var increaseTypes = []inventory.TransactionType{
	inventory.TransactionTypeInbound,
	inventory.TransactionTypeAdjustmentIncrease,
	inventory.TransactionTypeTransferIn,
}

var decreaseTypes = []inventory.TransactionType{
	inventory.TransactionTypeOutbound,
	inventory.TransactionTypeAdjustmentDecrease,
	inventory.TransactionTypeTransferOut,
}

// GormInventoryReportRepository implements the aggregation queries over the
// transaction log needed to build inventory summaries
type GormInventoryReportRepository struct {
	db *gorm.DB
}

// NewGormInventoryReportRepository creates a new GormInventoryReportRepository
func NewGormInventoryReportRepository(db *gorm.DB) *GormInventoryReportRepository {
	return &GormInventoryReportRepository{db: db}
}

// OpeningStock sums signed transaction quantities and values strictly before
// the given instant
func (r *GormInventoryReportRepository) OpeningStock(ctx context.Context, warehouseID uuid.UUID, before time.Time) (report.StockFigure, error) {
	var row stockFigureRow
	err := r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("warehouse_id = ? AND transaction_date < ?", warehouseID, before).
		Select(
			"SUM(CASE WHEN transaction_type IN ? THEN quantity ELSE -quantity END) AS quantity, "+
				"SUM(CASE WHEN transaction_type IN ? THEN total_value ELSE -total_value END) AS value",
			increaseTypes, increaseTypes,
		).
		Scan(&row).Error
	if err != nil {
		return report.StockFigure{}, err
	}
	return row.figure(), nil
}

// Inflow sums stock-increasing movements within [start, end], valued at each
// transaction's recorded price
func (r *GormInventoryReportRepository) Inflow(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (report.StockFigure, error) {
	return r.sumByTypes(ctx, warehouseID, increaseTypes, start, end)
}

// Outflow sums stock-decreasing movements within [start, end], valued at each
// transaction's recorded price
func (r *GormInventoryReportRepository) Outflow(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (report.StockFigure, error) {
	return r.sumByTypes(ctx, warehouseID, decreaseTypes, start, end)
}

// LiveQuantity returns the current total stock quantity of the warehouse
// from the stock items table
func (r *GormInventoryReportRepository) LiveQuantity(ctx context.Context, warehouseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockItem{}).
		Where("warehouse_id = ?", warehouseID).
		Select("SUM(quantity)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormInventoryReportRepository) sumByTypes(ctx context.Context, warehouseID uuid.UUID, types []inventory.TransactionType, start, end time.Time) (report.StockFigure, error) {
	var row stockFigureRow
	err := r.db.WithContext(ctx).
		Model(&inventory.InventoryTransaction{}).
		Where("warehouse_id = ? AND transaction_type IN ?", warehouseID, types).
		Where("transaction_date >= ? AND transaction_date <= ?", start, end).
		Select("SUM(quantity) AS quantity, SUM(total_value) AS value").
		Scan(&row).Error
	if err != nil {
		return report.StockFigure{}, err
	}
	return row.figure(), nil
}

type stockFigureRow struct {
	Quantity decimal.NullDecimal
	Value    decimal.NullDecimal
}

// figure converts a scanned row to a StockFigure, mapping NULL sums over
// empty ranges to zero
func (r stockFigureRow) figure() report.StockFigure {
	f := report.StockFigure{Quantity: decimal.Zero, Value: decimal.Zero}
	if r.Quantity.Valid {
		f.Quantity = r.Quantity.Decimal
	}
	if r.Value.Valid {
		f.Value = r.Value.Decimal
	}
	return f
}

// Ensure GormInventoryReportRepository implements InventoryReportRepository
var _ report.InventoryReportRepository = (*GormInventoryReportRepository)(nil)
