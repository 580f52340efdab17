package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bizcore/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create sales table", "create_sales_table"},
		{"Create-Sales-Table", "create_sales_table"},
		{"CREATE_SALES_TABLE", "create_sales_table"},
		{"add__payment__index", "add_payment_index"},
		{"Add Items 123", "add_items_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(dir, "add sale notes", "Widen the notes column")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_sale_notes.up.sql"))
	assert.Equal(t,
		strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql"),
		strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql"),
	)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add sale notes")
	assert.Contains(t, string(up), "Widen the notes column")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")

	require.NoError(t, CheckPairs(os.DirFS(dir)))
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20260102000000_b.up.sql":   {Data: []byte("--")},
		"20260102000000_b.down.sql": {Data: []byte("--")},
		"20260101000000_a.up.sql":   {Data: []byte("--")},
		"20260101000000_a.down.sql": {Data: []byte("--")},
		"README.md":                 {Data: []byte("docs")},
		"dir.up.sql/file":           {Data: []byte("--")},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_a", "20260102000000_b"}, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCheckPairs(t *testing.T) {
	fsys := fstest.MapFS{
		"1_a.up.sql":   {Data: []byte("--")},
		"2_b.down.sql": {Data: []byte("--")},
	}
	err := CheckPairs(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1_a has no down file")
	assert.Contains(t, err.Error(), "2_b has no up file")
}

func TestEmbeddedMigrations(t *testing.T) {
	require.NoError(t, CheckPairs(migrations.FS))

	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.Len(t, names, 4)
	assert.True(t, strings.HasSuffix(names[0], "create_inventory_items"), "sale_items references inventory_items")
	for _, table := range []string{"sales", "sale_items", "payments", "financial_movements"} {
		found := false
		for _, name := range names {
			body, err := migrations.FS.ReadFile(name + ".up.sql")
			require.NoError(t, err)
			if strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table+" ") {
				found = true
			}
		}
		assert.True(t, found, "no migration creates %s", table)
	}
}
