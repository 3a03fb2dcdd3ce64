package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for output rendering:
// - Human format uses the value's String method
// - JSON format pretty-prints the marshaled value
// - Compact format emits one line of JSON
// - ParseFormat maps names and defaults to Human

type fakeReport struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (f fakeReport) String() string {
	return f.Label + "!"
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, JSON, ParseFormat("json"))
	assert.Equal(t, Compact, ParseFormat("compact"))
	assert.Equal(t, Human, ParseFormat("human"))
	assert.Equal(t, Human, ParseFormat(""))
	assert.Equal(t, Human, ParseFormat("bogus"))
}

func TestPrint_Human(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, fakeReport{Label: "done", Count: 3}, Human))
	assert.Equal(t, "done!\n", buf.String())
}

func TestPrint_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, fakeReport{Label: "done", Count: 3}, JSON))
	assert.Equal(t, "{\n  \"label\": \"done\",\n  \"count\": 3\n}\n", buf.String())
}

func TestPrint_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, fakeReport{Label: "done", Count: 3}, Compact))
	assert.Equal(t, "{\"label\":\"done\",\"count\":3}\n", buf.String())
}
