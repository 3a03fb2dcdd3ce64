package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for init:
// - First run writes .ctx.yaml with the documented defaults
// - The written file parses as valid YAML config
// - A second run leaves the existing file alone

func TestInitProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	result, err := initProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "created", result.Status)

	path := filepath.Join(dir, ".ctx.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: human")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, 2000, v.GetInt("inject.budget"))
	assert.Equal(t, 1, v.GetInt("summarize.depth"))
}

func TestInitProject_AlreadyExists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, ".ctx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	result, err := initProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "exists", result.Status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "format: json\n", string(data))
}
