package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Transfer Items")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_transfer_items.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_transfer_items.down.sql"))

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Add Transfer Items")
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, os.WriteFile(dir+"/0001_init.up.sql", []byte("--"), 0o644))
	require.NoError(t, os.WriteFile(dir+"/0001_init.down.sql", []byte("--"), 0o644))
	require.NoError(t, os.WriteFile(dir+"/0002_notifications.up.sql", []byte("--"), 0o644))

	names, err = ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init", "0002_notifications"}, names)
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations("/nonexistent/migrations")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_stock_items", sanitizeName("Add  Stock-Items"))
	assert.Equal(t, "v2_schema", sanitizeName("v2 schema!"))
	assert.Equal(t, "trailing", sanitizeName("trailing "))
}
