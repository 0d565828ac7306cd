package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/inventory"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles stock and transaction log endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventory.InventoryService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(inventoryService *inventory.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler:      NewBaseHandler(logger),
		inventoryService: inventoryService,
	}
}

// RegisterRoutes registers inventory routes. Stock mutations require
// staff or admin.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("/warehouses/:warehouse_id/items", h.ListByWarehouse)
		inv.GET("/warehouses/:warehouse_id/summary", h.WarehouseSummary)
		inv.GET("/products/:product_id/items", h.ListByProduct)
		inv.GET("/transactions", h.ListTransactions)

		staff := inv.Group("/stock", middleware.RequireRole("staff", "admin"))
		{
			staff.POST("/receive", h.ReceiveStock)
			staff.POST("/adjust", h.AdjustStock)
		}
	}
}

// ReceiveStock records inbound stock arriving at a warehouse
func (h *InventoryHandler) ReceiveStock(c *gin.Context) {
	operatorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req inventory.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid receive payload")
		return
	}

	item, err := h.inventoryService.ReceiveStock(c.Request.Context(), req, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// AdjustStock applies a signed manual stock adjustment
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	operatorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req inventory.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid adjustment payload")
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), req, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListByWarehouse returns stock items held in a warehouse
func (h *InventoryHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, ok := h.parseUUIDParam(c, "warehouse_id")
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.ListByWarehouse(c.Request.Context(), warehouseID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}

// ListByProduct returns a product's stock across warehouses
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "product_id")
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.ListByProduct(c.Request.Context(), productID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}

// WarehouseSummary returns aggregated quantity and value for a warehouse
func (h *InventoryHandler) WarehouseSummary(c *gin.Context) {
	warehouseID, ok := h.parseUUIDParam(c, "warehouse_id")
	if !ok {
		return
	}

	summary, err := h.inventoryService.WarehouseSummary(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListTransactions returns inventory transaction log records
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if raw := c.Query("warehouse_id"); raw != "" {
		warehouseID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse_id parameter")
			return
		}
		filter.Filters["warehouse_id"] = warehouseID
	}
	if raw := c.Query("product_id"); raw != "" {
		productID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product_id parameter")
			return
		}
		filter.Filters["product_id"] = productID
	}
	if txType := c.Query("transaction_type"); txType != "" {
		filter.Filters["transaction_type"] = txType
	}
	if sourceType := c.Query("source_type"); sourceType != "" {
		filter.Filters["source_type"] = sourceType
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid from parameter, expected RFC 3339")
			return
		}
		filter.Filters["from"] = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid to parameter, expected RFC 3339")
			return
		}
		filter.Filters["to"] = to
	}

	result, err := h.inventoryService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}
