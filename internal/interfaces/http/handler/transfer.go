package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/transfer"
)

// TransferHandler handles inter-warehouse transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *transfer.TransferService
}

// NewTransferHandler creates a transfer handler
func NewTransferHandler(transferService *transfer.TransferService, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{
		BaseHandler:     NewBaseHandler(logger),
		transferService: transferService,
	}
}

// RegisterRoutes registers transfer routes
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.Create)
		transfers.GET("", h.List)
		transfers.GET("/:id", h.Get)
		transfers.POST("/:id/approve", h.Approve)
		transfers.POST("/:id/decline", h.Decline)
		transfers.POST("/:id/ship", h.Ship)
		transfers.POST("/:id/deliver", h.Deliver)
		transfers.POST("/:id/cancel", h.Cancel)
	}
}

// Create submits a new transfer request
func (h *TransferHandler) Create(c *gin.Context) {
	requesterID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req transfer.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid transfer payload")
		return
	}

	result, err := h.transferService.Create(c.Request.Context(), requesterID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns transfer requests matching the query
func (h *TransferHandler) List(c *gin.Context) {
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if transferType := c.Query("type"); transferType != "" {
		filter.Filters["type"] = transferType
	}
	if raw := c.Query("from_warehouse_id"); raw != "" {
		warehouseID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid from_warehouse_id parameter")
			return
		}
		filter.Filters["from_warehouse_id"] = warehouseID
	}
	if raw := c.Query("to_warehouse_id"); raw != "" {
		warehouseID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid to_warehouse_id parameter")
			return
		}
		filter.Filters["to_warehouse_id"] = warehouseID
	}
	if raw := c.Query("requested_by"); raw != "" {
		requesterID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid requested_by parameter")
			return
		}
		filter.Filters["requested_by"] = requesterID
	}

	result, err := h.transferService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}

// Get returns a single transfer request with its items
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.transferService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Approve approves a pending transfer request
func (h *TransferHandler) Approve(c *gin.Context) {
	h.transition(c, h.transferService.Approve)
}

// Ship marks an approved transfer as in transit and debits the source
// warehouse
func (h *TransferHandler) Ship(c *gin.Context) {
	h.transition(c, h.transferService.Ship)
}

// Deliver completes an in-transit transfer and credits the destination
// warehouse
func (h *TransferHandler) Deliver(c *gin.Context) {
	h.transition(c, h.transferService.Deliver)
}

// Decline declines a pending transfer request with a reason
func (h *TransferHandler) Decline(c *gin.Context) {
	h.transitionWithReason(c, h.transferService.Decline)
}

// Cancel cancels a transfer request with a reason. In-transit stock is
// returned to the source warehouse.
func (h *TransferHandler) Cancel(c *gin.Context) {
	h.transitionWithReason(c, h.transferService.Cancel)
}

type plainTransition func(ctx context.Context, id, actorID uuid.UUID) (*transfer.TransferResponse, error)

type reasonTransition func(ctx context.Context, id, actorID uuid.UUID, reason string) (*transfer.TransferResponse, error)

func (h *TransferHandler) transition(c *gin.Context, apply plainTransition) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	result, err := apply(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *TransferHandler) transitionWithReason(c *gin.Context, apply reasonTransition) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req transfer.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid reason payload")
		return
	}

	result, err := apply(c.Request.Context(), id, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
