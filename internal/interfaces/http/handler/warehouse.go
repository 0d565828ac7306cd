package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/partner"
	"github.com/wims/backend/internal/interfaces/http/middleware"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *partner.WarehouseService
}

// NewWarehouseHandler creates a warehouse handler
func NewWarehouseHandler(warehouseService *partner.WarehouseService, logger *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{
		BaseHandler:      NewBaseHandler(logger),
		warehouseService: warehouseService,
	}
}

// RegisterRoutes registers warehouse routes. Mutations require staff or
// admin; manager assignment requires admin.
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouses := rg.Group("/partner/warehouses")
	{
		warehouses.GET("", h.List)
		warehouses.GET("/:id", h.Get)

		staff := warehouses.Group("", middleware.RequireRole("staff", "admin"))
		{
			staff.POST("", h.Create)
			staff.PUT("/:id", h.Update)
			staff.POST("/:id/activate", h.Activate)
			staff.POST("/:id/deactivate", h.Deactivate)
		}

		admin := warehouses.Group("", middleware.RequireRole("admin"))
		{
			admin.DELETE("/:id", h.Delete)
			admin.POST("/:id/managers", h.AssignManager)
			admin.DELETE("/:id/managers/:user_id", h.UnassignManager)
		}
	}
}

// Create registers a new warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req partner.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid warehouse payload")
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, warehouse)
}

// List returns warehouses matching the query
func (h *WarehouseHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if warehouseType := c.Query("type"); warehouseType != "" {
		filter.Filters["type"] = warehouseType
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}

// Get returns a single warehouse with its managers
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Update modifies a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partner.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid warehouse payload")
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Activate marks a warehouse as active
func (h *WarehouseHandler) Activate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Deactivate marks a warehouse as inactive
func (h *WarehouseHandler) Deactivate(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// AssignManager assigns a staff user as warehouse manager
func (h *WarehouseHandler) AssignManager(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partner.AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid manager payload")
		return
	}

	warehouse, err := h.warehouseService.AssignManager(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// UnassignManager removes a manager from a warehouse
func (h *WarehouseHandler) UnassignManager(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.parseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.UnassignManager(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Delete removes a warehouse. Warehouses with stock records cannot
// be deleted.
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
