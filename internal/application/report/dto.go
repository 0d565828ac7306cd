package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/report"
)

// StockFigureResponse pairs a quantity with its valuation in API responses
type StockFigureResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// InventorySummaryResponse represents a warehouse movement summary
type InventorySummaryResponse struct {
	WarehouseID  uuid.UUID           `json:"warehouse_id"`
	StartDate    time.Time           `json:"start_date"`
	EndDate      time.Time           `json:"end_date"`
	OpeningStock StockFigureResponse `json:"opening_stock"`
	Inflow       StockFigureResponse `json:"inflow"`
	Outflow      StockFigureResponse `json:"outflow"`
	ClosingStock StockFigureResponse `json:"closing_stock"`
}

func toFigure(f report.StockFigure) StockFigureResponse {
	return StockFigureResponse{Quantity: f.Quantity, Value: f.Value}
}

// ToInventorySummaryResponse converts the read model to its response shape
func ToInventorySummaryResponse(s *report.InventorySummary) InventorySummaryResponse {
	return InventorySummaryResponse{
		WarehouseID:  s.WarehouseID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		OpeningStock: toFigure(s.OpeningStock),
		Inflow:       toFigure(s.Inflow),
		Outflow:      toFigure(s.Outflow),
		ClosingStock: toFigure(s.ClosingStock),
	}
}
