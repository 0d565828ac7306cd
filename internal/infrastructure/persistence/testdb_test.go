package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/identity"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/notification"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/transfer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&identity.User{},
		&partner.Warehouse{},
		&partner.WarehouseManager{},
		&partner.Supplier{},
		&inventory.StockItem{},
		&inventory.InventoryTransaction{},
		&transfer.TransferRequest{},
		&transfer.TransferItem{},
		&notification.Notification{},
	))

	return db
}
