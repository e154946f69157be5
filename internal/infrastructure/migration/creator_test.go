package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"create vendor quotes", "create_vendor_quotes"},
		{"Create-Vendor-Quotes", "create_vendor_quotes"},
		{"ADD_DOCUMENT_SEQUENCES", "add_document_sequences"},
		{"seed  admin   user", "seed_admin_user"},
		{"purchase orders v2", "purchase_orders_v2"},
		{"  padded  ", "padded"},
		{"quotes!(draft)", "quotes_draft"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.name))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add vendor quotes", "bid ledger table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_vendor_quotes.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, mf.Version+"_add_vendor_quotes.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add vendor quotes")
	assert.Contains(t, string(up), "bid ledger table")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "revert: add vendor quotes")
}

func TestCreateMigration_NoDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add catalog items", "")
	require.NoError(t, err)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(up), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	pairs := []string{
		"000001_create_users",
		"000002_create_partners",
		"000003_create_procurement",
	}
	for _, base := range pairs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".up.sql"), []byte("-- up"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".down.sql"), []byte("-- down"), 0o644))
	}
	// stray files and directories are not migration pairs
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, pairs, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
