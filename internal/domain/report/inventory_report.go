package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockFigure pairs a quantity with its valuation
type StockFigure struct {
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// Add returns the component-wise sum of two figures
func (f StockFigure) Add(other StockFigure) StockFigure {
	return StockFigure{
		Quantity: f.Quantity.Add(other.Quantity),
		Value:    f.Value.Add(other.Value),
	}
}

// Sub returns the component-wise difference of two figures
func (f StockFigure) Sub(other StockFigure) StockFigure {
	return StockFigure{
		Quantity: f.Quantity.Sub(other.Quantity),
		Value:    f.Value.Sub(other.Value),
	}
}

// InventorySummary is the read model for a warehouse's stock movement over
// a date range. closing = opening + inflow - outflow, reconciled against
// live stock before the summary is served.
type InventorySummary struct {
	WarehouseID  uuid.UUID   `json:"warehouse_id"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	OpeningStock StockFigure `json:"opening_stock"`
	Inflow       StockFigure `json:"inflow"`
	Outflow      StockFigure `json:"outflow"`
	ClosingStock StockFigure `json:"closing_stock"`
}

// InventoryReportRepository defines the aggregation queries over the
// transaction log needed to build an InventorySummary
type InventoryReportRepository interface {
	// OpeningStock sums signed transaction quantities and values strictly
	// before the given instant
	OpeningStock(ctx context.Context, warehouseID uuid.UUID, before time.Time) (StockFigure, error)

	// Inflow sums positive movements within [start, end], valued at each
	// transaction's recorded price
	Inflow(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (StockFigure, error)

	// Outflow sums negative movements within [start, end], valued at each
	// transaction's recorded price
	Outflow(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (StockFigure, error)

	// LiveQuantity returns the current total stock quantity of the
	// warehouse from the stock items table
	LiveQuantity(ctx context.Context, warehouseID uuid.UUID) (decimal.Decimal, error)
}
