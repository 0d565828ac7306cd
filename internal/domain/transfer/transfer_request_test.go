package transfer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/partner"
)

func newPendingRequest(t *testing.T) *TransferRequest {
	t.Helper()
	request, err := NewTransferRequest(uuid.New(), uuid.New(), TransferTypeRegularToRegular, uuid.New(), "restock")
	require.NoError(t, err)
	require.NoError(t, request.AddItem(uuid.New(), "Widget", decimal.NewFromInt(10), decimal.NewFromInt(3)))
	return request
}

func TestNewTransferRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		request := newPendingRequest(t)
		assert.Equal(t, TransferStatusPending, request.Status)
		assert.True(t, request.IsPending())
		assert.True(t, request.TotalQuantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, request.TotalPrice.Equal(decimal.NewFromInt(30)))
	})

	t.Run("rejects identical source and destination", func(t *testing.T) {
		warehouseID := uuid.New()
		_, err := NewTransferRequest(warehouseID, warehouseID, TransferTypeRegularToRegular, uuid.New(), "")
		require.Error(t, err)
	})

	t.Run("rejects unknown transfer type", func(t *testing.T) {
		_, err := NewTransferRequest(uuid.New(), uuid.New(), TransferType("SIDEWAYS"), uuid.New(), "")
		require.Error(t, err)
	})

	t.Run("rejects missing requester", func(t *testing.T) {
		_, err := NewTransferRequest(uuid.New(), uuid.New(), TransferTypeSuperToRegular, uuid.Nil, "")
		require.Error(t, err)
	})
}

func TestTransferAddItem(t *testing.T) {
	request, err := NewTransferRequest(uuid.New(), uuid.New(), TransferTypeRegularToRegular, uuid.New(), "")
	require.NoError(t, err)

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		require.Error(t, request.AddItem(uuid.New(), "Widget", decimal.Zero, decimal.NewFromInt(1)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		productID := uuid.New()
		require.NoError(t, request.AddItem(productID, "Widget", decimal.NewFromInt(5), decimal.NewFromInt(2)))
		require.Error(t, request.AddItem(productID, "Widget", decimal.NewFromInt(3), decimal.NewFromInt(2)))
	})

	t.Run("recalculates totals per item", func(t *testing.T) {
		require.NoError(t, request.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(4), decimal.NewFromInt(10)))
		assert.True(t, request.TotalQuantity.Equal(decimal.NewFromInt(9)))
		assert.True(t, request.TotalPrice.Equal(decimal.NewFromInt(50)))
	})

	t.Run("submit requires at least one item", func(t *testing.T) {
		empty, err := NewTransferRequest(uuid.New(), uuid.New(), TransferTypeRegularToRegular, uuid.New(), "")
		require.NoError(t, err)
		require.Error(t, empty.Submit())
	})
}

func TestTransferStateMachine(t *testing.T) {
	t.Run("happy path pending to completed", func(t *testing.T) {
		request := newPendingRequest(t)

		require.NoError(t, request.Approve())
		assert.Equal(t, TransferStatusApproved, request.Status)
		assert.NotNil(t, request.ApprovedAt)

		require.NoError(t, request.Ship())
		assert.Equal(t, TransferStatusInTransit, request.Status)

		require.NoError(t, request.Complete())
		assert.True(t, request.IsCompleted())
		assert.NotNil(t, request.CompletedAt)
	})

	t.Run("decline only from pending", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Decline("no capacity"))
		assert.Equal(t, TransferStatusDeclined, request.Status)

		approved := newPendingRequest(t)
		require.NoError(t, approved.Approve())
		require.Error(t, approved.Decline("too late"))
	})

	t.Run("cancel allowed from pending approved and in transit", func(t *testing.T) {
		for _, setup := range []func(*TransferRequest){
			func(r *TransferRequest) {},
			func(r *TransferRequest) { require.NoError(t, r.Approve()) },
			func(r *TransferRequest) { require.NoError(t, r.Approve()); require.NoError(t, r.Ship()) },
		} {
			request := newPendingRequest(t)
			setup(request)
			require.NoError(t, request.Cancel("changed plans"))
			assert.Equal(t, TransferStatusCancelled, request.Status)
		}
	})

	t.Run("terminal states admit no transitions", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve())
		require.NoError(t, request.Ship())
		require.NoError(t, request.Complete())

		require.Error(t, request.Cancel("too late"))
		require.Error(t, request.Approve())
		require.Error(t, request.MarkFailed("nope"))
	})

	t.Run("cannot ship before approval", func(t *testing.T) {
		request := newPendingRequest(t)
		require.Error(t, request.Ship())
		require.Error(t, request.Complete())
	})

	t.Run("failure recorded from in transit", func(t *testing.T) {
		request := newPendingRequest(t)
		require.NoError(t, request.Approve())
		require.NoError(t, request.Ship())
		require.NoError(t, request.MarkFailed("insufficient stock at source"))
		assert.Equal(t, TransferStatusFailed, request.Status)
		assert.Equal(t, "insufficient stock at source", request.FailureReason)
	})
}

func TestTransferTypeMatches(t *testing.T) {
	cases := []struct {
		transferType TransferType
		from, to     partner.WarehouseType
		want         bool
	}{
		{TransferTypeSuperToRegular, partner.WarehouseTypeSuper, partner.WarehouseTypeRegular, true},
		{TransferTypeSuperToRegular, partner.WarehouseTypeRegular, partner.WarehouseTypeRegular, false},
		{TransferTypeRegularToRegular, partner.WarehouseTypeRegular, partner.WarehouseTypeRegular, true},
		{TransferTypeRegularToRegular, partner.WarehouseTypeSuper, partner.WarehouseTypeRegular, false},
		{TransferTypeRegularToSuper, partner.WarehouseTypeRegular, partner.WarehouseTypeSuper, true},
		{TransferTypeRegularToSuper, partner.WarehouseTypeSuper, partner.WarehouseTypeRegular, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.transferType.Matches(tc.from, tc.to),
			"%s from=%s to=%s", tc.transferType, tc.from, tc.to)
	}
}
