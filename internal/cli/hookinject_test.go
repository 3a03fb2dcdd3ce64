package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/git"
)

// Test Plan for hook-inject:
// - Valid hook input yields the UserPromptSubmit envelope with context
// - Uncommitted diff stats are part of the hook context
// - Malformed JSON input is rejected

func TestRunHookInject(t *testing.T) {
	inDir(t, t.TempDir())
	withMockGit(t, &git.MockOperations{
		StatusValue: &git.Status{Branch: "main"},
		Changes: []git.FileChange{
			{Path: "a.rs", Insertions: 2, Deletions: 1},
		},
	})

	in := strings.NewReader(`{"prompt": "fix the parser", "session_id": "s1"}`)
	var out bytes.Buffer
	require.NoError(t, runHookInject(in, &out, 500))

	var reply struct {
		HookSpecificOutput struct {
			HookEventName     string `json:"hookEventName"`
			AdditionalContext string `json:"additionalContext"`
		} `json:"hookSpecificOutput"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &reply))

	assert.Equal(t, "UserPromptSubmit", reply.HookSpecificOutput.HookEventName)
	assert.Contains(t, reply.HookSpecificOutput.AdditionalContext, "[CTX:")
	assert.Contains(t, reply.HookSpecificOutput.AdditionalContext, "[UNCOMMITTED: +2 -1]")
}

func TestRunHookInject_BadInput(t *testing.T) {
	inDir(t, t.TempDir())
	withMockGit(t, &git.MockOperations{StatusValue: &git.Status{Branch: "main"}})

	var out bytes.Buffer
	err := runHookInject(strings.NewReader("not json"), &out, 500)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
