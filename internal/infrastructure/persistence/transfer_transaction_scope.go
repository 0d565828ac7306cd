package persistence

import (
	"context"

	apptransfer "github.com/wims/backend/internal/application/transfer"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransactionScope implements the transfer TransactionScope using GORM
// transactions. Every repository handed to the callback shares one database
// transaction, so a failed line item rolls back all prior stock movements.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. An error
// from the function rolls the transaction back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptransfer.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories exposes the repositories scoped to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the stock item repository scoped to the current transaction
func (r *gormTransactionalRepositories) StockRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// TransactionRepo returns the transaction log repository scoped to the current transaction
func (r *gormTransactionalRepositories) TransactionRepo() inventory.InventoryTransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

// TransferRepo returns the transfer request repository scoped to the current transaction
func (r *gormTransactionalRepositories) TransferRepo() transfer.TransferRequestRepository {
	return NewGormTransferRequestRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apptransfer.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apptransfer.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
