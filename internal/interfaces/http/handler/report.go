package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *report.ReportService
}

// NewReportHandler creates a report handler
func NewReportHandler(reportService *report.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/inventory/summary", h.InventorySummary)
	}
}

// InventorySummary returns opening, inflow, outflow and closing stock for
// a warehouse over a date range. Dates are inclusive calendar days; the
// end date resolves to the end of that day.
func (h *ReportHandler) InventorySummary(c *gin.Context) {
	rawWarehouseID := c.Query("warehouse_id")
	if rawWarehouseID == "" {
		h.BadRequest(c, "warehouse_id is required")
		return
	}
	warehouseID, err := uuid.Parse(rawWarehouseID)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id parameter")
		return
	}

	start, ok := h.parseDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := h.parseDate(c, "end_date")
	if !ok {
		return
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	summary, err := h.reportService.GetInventorySummary(c.Request.Context(), warehouseID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

func (h *ReportHandler) parseDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.BadRequest(c, name+" is required")
		return time.Time{}, false
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
