package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigrationWritesPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Budget Goals")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, filepath.Base(mf.UpPath), "add_budget_goals")
	assert.Len(t, mf.Version, 14)

	content, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Add Budget Goals")
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	list, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = CreateMigration(dir, "first")
	require.NoError(t, err)

	list, err = ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0], "first")
}

func TestListMigrationsMissingDir(t *testing.T) {
	list, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Budget Goals", "add_budget_goals"},
		{"fix--index  name", "fix_index_name"},
		{"Trailing ", "trailing"},
		{"v2 Schema!", "v2_schema"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}
