package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for schema:
// - Every JSON-emitting analysis command has an output schema
// - Schemas serialize cleanly and carry the command name
// - Unknown commands are rejected with the available set

func TestCommandSchema_KnownCommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"status", "map", "summarize", "search", "related", "diff-context"} {
		schema, err := commandSchema(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, schema.Command)
		assert.NotEmpty(t, schema.Description)

		payload, err := json.Marshal(schema)
		require.NoError(t, err, name)
		assert.Contains(t, string(payload), `"output_schema"`)
	}
}

func TestCommandSchema_StatusShape(t *testing.T) {
	t.Parallel()

	schema, err := commandSchema("status")
	require.NoError(t, err)

	props := schema.OutputSchema["properties"].(map[string]interface{})
	assert.Contains(t, props, "branch")
	assert.Contains(t, props, "recent_commits")
	assert.Contains(t, props, "hot_directories")
	assert.Contains(t, props, "diff_stats")
}

func TestCommandSchema_Unknown(t *testing.T) {
	t.Parallel()

	_, err := commandSchema("teleport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
