package transfer

import (
	"context"

	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/transfer"
)

// TransactionScope provides transactional access to the repositories a
// transfer execution touches. All repository operations inside Execute share
// one database transaction and commit or roll back atomically; a failure on
// any line item therefore undoes every already-applied stock movement.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction.
type TransactionalRepositories interface {
	// StockRepo returns the stock item repository scoped to the current transaction
	StockRepo() inventory.StockItemRepository
	// TransactionRepo returns the transaction log repository scoped to the current transaction
	TransactionRepo() inventory.InventoryTransactionRepository
	// TransferRepo returns the transfer request repository scoped to the current transaction
	TransferRepo() transfer.TransferRequestRepository
}

// NoOpTransactionScope runs the function against plain repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	stockRepo       inventory.StockItemRepository
	transactionRepo inventory.InventoryTransactionRepository
	transferRepo    transfer.TransferRequestRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stockRepo inventory.StockItemRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	transferRepo transfer.TransferRequestRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		transferRepo:    transferRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the stock item repository
func (s *NoOpTransactionScope) StockRepo() inventory.StockItemRepository {
	return s.stockRepo
}

// TransactionRepo returns the transaction log repository
func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

// TransferRepo returns the transfer request repository
func (s *NoOpTransactionScope) TransferRepo() transfer.TransferRequestRepository {
	return s.transferRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
