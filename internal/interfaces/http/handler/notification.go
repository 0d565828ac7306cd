package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/application/notification"
)

// NotificationHandler handles notification endpoints for the
// authenticated user
type NotificationHandler struct {
	BaseHandler
	notificationService *notification.NotificationService
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(notificationService *notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
	}
}

// List returns the authenticated user's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	recipientID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.ToFilter()
	if c.Query("unread") == "true" {
		filter.Filters["unread"] = true
	}

	result, err := h.notificationService.ListByRecipient(c.Request.Context(), recipientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, paginatedMeta(result))
}

// UnreadCount returns the authenticated user's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipientID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, count)
}

// MarkRead marks one of the user's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	recipientID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationService.MarkRead(c.Request.Context(), id, recipientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkAllRead marks all of the user's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	recipientID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), recipientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
