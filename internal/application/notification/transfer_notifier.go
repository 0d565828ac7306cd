package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/domain/notification"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/transfer"
)

// TransferNotifier turns transfer lifecycle events into inbox notifications.
// A TransferRequested event notifies the managers of the source warehouse,
// who must act on the request; every later transition notifies the requester.
type TransferNotifier struct {
	logger           *zap.Logger
	notificationRepo notification.NotificationRepository
	warehouseRepo    partner.WarehouseRepository
}

// NewTransferNotifier creates a new handler for transfer lifecycle events
func NewTransferNotifier(
	logger *zap.Logger,
	notificationRepo notification.NotificationRepository,
	warehouseRepo partner.WarehouseRepository,
) *TransferNotifier {
	return &TransferNotifier{
		logger:           logger,
		notificationRepo: notificationRepo,
		warehouseRepo:    warehouseRepo,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *TransferNotifier) EventTypes() []string {
	return []string{
		transfer.EventTypeTransferRequested,
		transfer.EventTypeTransferApproved,
		transfer.EventTypeTransferDeclined,
		transfer.EventTypeTransferShipped,
		transfer.EventTypeTransferCompleted,
		transfer.EventTypeTransferCancelled,
		transfer.EventTypeTransferFailed,
	}
}

// Handle processes a transfer lifecycle event
func (h *TransferNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	transferEvent, ok := event.(*transfer.TransferEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if event.EventType() == transfer.EventTypeTransferRequested {
		return h.notifySourceManagers(ctx, transferEvent)
	}
	return h.notifyRequester(ctx, transferEvent)
}

func (h *TransferNotifier) notifySourceManagers(ctx context.Context, event *transfer.TransferEvent) error {
	warehouse, err := h.warehouseRepo.FindByID(ctx, event.FromWarehouseID)
	if err != nil {
		h.logger.Error("failed to load source warehouse for notification",
			zap.String("transfer_id", event.TransferID.String()),
			zap.String("warehouse_id", event.FromWarehouseID.String()),
			zap.Error(err),
		)
		return err
	}

	message := fmt.Sprintf("New transfer request for %s units from warehouse %s", event.TotalQuantity, warehouse.Name)
	notifications := make([]*notification.Notification, 0, len(warehouse.Managers))
	for _, managerID := range warehouse.ManagerIDs() {
		n, err := notification.NewNotification(managerID, notification.TypeTransferRequested, message)
		if err != nil {
			return err
		}
		notifications = append(notifications, n.WithTransfer(event.TransferID))
	}
	if len(notifications) == 0 {
		return nil
	}

	if err := h.notificationRepo.SaveBatch(ctx, notifications); err != nil {
		h.logger.Error("failed to save transfer notifications",
			zap.String("transfer_id", event.TransferID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *TransferNotifier) notifyRequester(ctx context.Context, event *transfer.TransferEvent) error {
	notificationType, message := describeTransition(event)
	if notificationType == "" {
		return nil
	}

	n, err := notification.NewNotification(event.RequestedBy, notificationType, message)
	if err != nil {
		return err
	}
	n.WithTransfer(event.TransferID)

	if err := h.notificationRepo.Save(ctx, n); err != nil {
		h.logger.Error("failed to save transfer notification",
			zap.String("transfer_id", event.TransferID.String()),
			zap.String("recipient_id", event.RequestedBy.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func describeTransition(event *transfer.TransferEvent) (notification.NotificationType, string) {
	id := shortID(event.TransferID)
	switch event.EventType() {
	case transfer.EventTypeTransferApproved:
		return notification.TypeTransferApproved, fmt.Sprintf("Transfer request %s has been approved", id)
	case transfer.EventTypeTransferDeclined:
		return notification.TypeTransferDeclined, fmt.Sprintf("Transfer request %s was declined", id)
	case transfer.EventTypeTransferShipped:
		return notification.TypeTransferShipped, fmt.Sprintf("Transfer request %s is in transit", id)
	case transfer.EventTypeTransferCompleted:
		return notification.TypeTransferCompleted, fmt.Sprintf("Transfer request %s has been delivered", id)
	case transfer.EventTypeTransferCancelled:
		return notification.TypeTransferCancelled, fmt.Sprintf("Transfer request %s was cancelled", id)
	case transfer.EventTypeTransferFailed:
		message := fmt.Sprintf("Transfer request %s failed", id)
		if event.Reason != "" {
			message = fmt.Sprintf("%s: %s", message, event.Reason)
		}
		return notification.TypeTransferFailed, message
	}
	return "", ""
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

var _ shared.EventHandler = (*TransferNotifier)(nil)
