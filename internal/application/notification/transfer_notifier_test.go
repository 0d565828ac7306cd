package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wims/backend/internal/domain/notification"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/transfer"
)

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, recipientID, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) SaveBatch(ctx context.Context, ns []*notification.Notification) error {
	args := m.Called(ctx, ns)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByCode(ctx context.Context, code string) (*partner.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindManagedBy(ctx context.Context, userID uuid.UUID) ([]partner.Warehouse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *partner.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func pendingRequest(t *testing.T, fromID, toID, requesterID uuid.UUID) *transfer.TransferRequest {
	t.Helper()
	request, err := transfer.NewTransferRequest(fromID, toID, transfer.TransferTypeSuperToRegular, requesterID, "")
	require.NoError(t, err)
	require.NoError(t, request.AddItem(uuid.New(), "Widget", decimal.NewFromInt(5), decimal.NewFromInt(2)))
	require.NoError(t, request.Submit())
	return request
}

func TestTransferNotifierRequested(t *testing.T) {
	ctx := context.Background()
	notificationRepo := new(MockNotificationRepository)
	warehouseRepo := new(MockWarehouseRepository)
	handler := NewTransferNotifier(zap.NewNop(), notificationRepo, warehouseRepo)

	managerA := uuid.New()
	managerB := uuid.New()
	from, err := partner.NewWarehouse("WH-SUPER", "Central", partner.WarehouseTypeSuper)
	require.NoError(t, err)
	require.NoError(t, from.AssignManager(managerA))
	require.NoError(t, from.AssignManager(managerB))

	request := pendingRequest(t, from.ID, uuid.New(), uuid.New())
	event := transfer.NewTransferRequestedEvent(request)

	warehouseRepo.On("FindByID", ctx, from.ID).Return(from, nil)
	notificationRepo.On("SaveBatch", ctx, mock.MatchedBy(func(ns []*notification.Notification) bool {
		if len(ns) != 2 {
			return false
		}
		recipients := map[uuid.UUID]bool{ns[0].RecipientID: true, ns[1].RecipientID: true}
		return recipients[managerA] && recipients[managerB] &&
			ns[0].Type == notification.TypeTransferRequested &&
			ns[0].TransferID != nil && *ns[0].TransferID == request.ID
	})).Return(nil)

	err = handler.Handle(ctx, event)

	require.NoError(t, err)
	notificationRepo.AssertExpectations(t)
}

func TestTransferNotifierTransitions(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	cases := []struct {
		name     string
		mutate   func(t *testing.T, r *transfer.TransferRequest)
		wantType notification.NotificationType
	}{
		{
			name: "approved notifies the requester",
			mutate: func(t *testing.T, r *transfer.TransferRequest) {
				require.NoError(t, r.Approve())
			},
			wantType: notification.TypeTransferApproved,
		},
		{
			name: "declined notifies the requester",
			mutate: func(t *testing.T, r *transfer.TransferRequest) {
				require.NoError(t, r.Decline("out of scope"))
			},
			wantType: notification.TypeTransferDeclined,
		},
		{
			name: "failed notification carries the reason",
			mutate: func(t *testing.T, r *transfer.TransferRequest) {
				require.NoError(t, r.Approve())
				require.NoError(t, r.Ship())
				require.NoError(t, r.MarkFailed("stock ran short"))
			},
			wantType: notification.TypeTransferFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notificationRepo := new(MockNotificationRepository)
			warehouseRepo := new(MockWarehouseRepository)
			handler := NewTransferNotifier(zap.NewNop(), notificationRepo, warehouseRepo)

			request := pendingRequest(t, uuid.New(), uuid.New(), requesterID)
			request.ClearDomainEvents()
			tc.mutate(t, request)

			events := request.GetDomainEvents()
			require.NotEmpty(t, events)
			lastEvent := events[len(events)-1]

			notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
				return n.RecipientID == requesterID && n.Type == tc.wantType
			})).Return(nil)

			err := handler.Handle(ctx, lastEvent)

			require.NoError(t, err)
			notificationRepo.AssertExpectations(t)
		})
	}
}

func TestTransferNotifierFailedMessageIncludesReason(t *testing.T) {
	ctx := context.Background()
	notificationRepo := new(MockNotificationRepository)
	handler := NewTransferNotifier(zap.NewNop(), notificationRepo, new(MockWarehouseRepository))

	request := pendingRequest(t, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, request.Approve())
	require.NoError(t, request.Ship())
	request.ClearDomainEvents()
	require.NoError(t, request.MarkFailed("stock ran short"))

	var saved *notification.Notification
	notificationRepo.On("Save", ctx, mock.AnythingOfType("*notification.Notification")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*notification.Notification)
	}).Return(nil)

	events := request.GetDomainEvents()
	require.Len(t, events, 1)
	require.NoError(t, handler.Handle(ctx, events[0]))

	require.NotNil(t, saved)
	assert.Contains(t, saved.Message, "stock ran short")
}
