package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for capabilities:
// - Every user-facing analysis command has a tool definition
// - The document round-trips through JSON
// - Languages and formats match what the binary supports

func TestCapabilities(t *testing.T) {
	t.Parallel()

	caps := capabilities()
	assert.Equal(t, "ctx", caps.Name)
	assert.Equal(t, []string{"human", "json", "compact"}, caps.OutputFormats)
	assert.Contains(t, caps.Languages, "rust")
	assert.Contains(t, caps.Languages, "typescript")
	assert.Equal(t, 0, caps.ExitCodes.Success)
	assert.Equal(t, 1, caps.ExitCodes.Error)

	var names []string
	for _, tool := range caps.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.NotEmpty(t, tool.Usage, tool.Name)
		assert.NotEmpty(t, tool.InputSchema, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"status", "map", "summarize", "search", "related",
		"diff-context", "inject", "schema", "version",
	}, names)
}

func TestCapabilitiesJSON(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(capabilities())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Contains(t, decoded, "tools")
	assert.Contains(t, decoded, "exit_codes")
	assert.Contains(t, decoded, "integrations")
}
