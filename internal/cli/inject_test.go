package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/git"
	"github.com/ctxkit/ctx/internal/relevance"
)

// Test Plan for inject:
// - Mode parsing accepts prepend/append/wrap, rejects anything else
// - Output placement per mode keeps the prompt verbatim
// - buildContext emits the header, recent, mentioned, relevant, and
//   keyword lines in order within the budget
// - A tight budget keeps only the header
// - Without a repository the header degrades to no-git and the
//   git-backed sections disappear

func TestParseInjectMode(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]injectMode{
		"prepend": injectPrepend,
		"append":  injectAppend,
		"Wrap":    injectWrap,
	} {
		mode, err := parseInjectMode(name)
		require.NoError(t, err)
		assert.Equal(t, want, mode)
	}

	_, err := parseInjectMode("sideways")
	assert.Error(t, err)
}

func TestInjectOutput(t *testing.T) {
	t.Parallel()

	prompt := "fix the parser\n"
	context := "[CTX: project=demo lang=rust branch=main]"

	assert.Equal(t, context+"\n---\n"+prompt, injectOutput(prompt, context, injectPrepend))
	assert.Equal(t, prompt+"---\n"+context+"\n", injectOutput(prompt, context, injectAppend))
	assert.Equal(t, "[CTX-START]\n"+context+"\n[CTX-END]\n"+prompt, injectOutput(prompt, context, injectWrap))
}

func TestBuildContext(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Cargo.toml", "[package]\nname = \"demo\"\n")
	writeSource(t, dir, "src/parser.rs", "fn parse() {}\n")

	withMockGit(t, &git.MockOperations{
		StatusValue: &git.Status{Branch: "main", IsDirty: true, ModifiedFiles: []string{"src/parser.rs"}},
		Activity: []git.FileActivity{
			{Path: "src/parser.rs", CommitCount: 4, LastModified: "2h ago", LastAuthor: "alice"},
		},
	})

	context := buildContext(dir, "fix the parser error in src/parser.rs", 500, false)
	lines := strings.Split(context, "\n")

	require.NotEmpty(t, lines)
	assert.Equal(t, "[CTX: project=demo lang=rust branch=main*]", lines[0])
	assert.Contains(t, lines, "[RECENT: src/parser.rs modified 2h ago]")
	assert.Contains(t, lines, "[MENTIONED: src/parser.rs]")
	assert.Contains(t, lines, "[RELEVANT: src/parser.rs (path mentioned, 4 recent commits)]")
	assert.Contains(t, lines, "[KEYWORDS: fix, parser, error, src]")
}

func TestBuildContext_UncommittedStats(t *testing.T) {
	dir := t.TempDir()

	withMockGit(t, &git.MockOperations{
		StatusValue: &git.Status{Branch: "main"},
		Changes: []git.FileChange{
			{Path: "a.rs", Insertions: 3, Deletions: 1},
			{Path: "b.rs", Insertions: 2},
		},
	})

	context := buildContext(dir, "hello", 500, true)
	assert.Contains(t, context, "[UNCOMMITTED: +5 -1]")

	quiet := buildContext(dir, "hello", 500, false)
	assert.NotContains(t, quiet, "[UNCOMMITTED:")
}

func TestBuildContext_BudgetHeaderOnly(t *testing.T) {
	dir := t.TempDir()

	withMockGit(t, &git.MockOperations{
		StatusValue: &git.Status{Branch: "main"},
		Activity: []git.FileActivity{
			{Path: "src/parser.rs", CommitCount: 4, LastModified: "2h ago"},
		},
	})

	header := "[CTX: project=" + filepath.Base(dir) + " lang=unknown branch=main]"
	budget := relevance.EstimateTokens(header)

	context := buildContext(dir, "fix the parser error", budget, false)
	assert.Equal(t, header, context)
}

func TestBuildContext_NoGit(t *testing.T) {
	dir := t.TempDir()

	withMockGit(t, &git.MockOperations{Err: errors.New("not a git repository")})

	context := buildContext(dir, "check src/main.rs for errors", 500, false)
	assert.Contains(t, context, "no-git]")
	assert.Contains(t, context, "[MENTIONED: src/main.rs]")
	assert.NotContains(t, context, "[RECENT:")
	assert.NotContains(t, context, "[RELEVANT:")
}
