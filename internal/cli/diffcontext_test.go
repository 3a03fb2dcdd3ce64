package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/git"
)

// Test Plan for diff-context:
// - Changed lines map onto the enclosing function per file
// - Callers of modified functions are listed; empty lists are dropped
// - Deleted files are skipped
// - Unsupported files keep their diff stats with no functions
// - Git failures propagate

// withMockGit swaps the package git backend for the test's duration.
func withMockGit(t *testing.T, mock *git.MockOperations) {
	t.Helper()
	old := gitOps
	gitOps = mock
	t.Cleanup(func() { gitOps = old })
}

// inDir runs the test from dir so relative diff paths resolve.
func inDir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestAnalyzeDiff(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)

	writeSource(t, dir, "lib.rs", `fn compute() {
    step_one();
    step_two();
}

fn untouched() {
    idle();
}
`)
	writeSource(t, dir, "main.rs", `fn main() {
    compute();
}
`)

	withMockGit(t, &git.MockOperations{
		Changes: []git.FileChange{
			{Path: "lib.rs", Insertions: 1, Deletions: 1, Lines: map[int]bool{2: true}},
		},
	})

	ctx, err := analyzeDiff(".", "HEAD")
	require.NoError(t, err)

	assert.Equal(t, "HEAD", ctx.RefName)
	require.Len(t, ctx.FilesChanged, 1)

	file := ctx.FilesChanged[0]
	assert.Equal(t, "lib.rs", file.Path)
	assert.Equal(t, 1, file.Insertions)
	assert.Equal(t, 1, file.Deletions)
	require.Len(t, file.FunctionsModified, 1)
	assert.Equal(t, "compute", file.FunctionsModified[0].Name)
	assert.Equal(t, "fn", file.FunctionsModified[0].Kind)
	assert.Equal(t, 1, file.FunctionsModified[0].StartLine)

	require.Len(t, ctx.CallersAffected, 1)
	assert.Equal(t, "lib.rs:compute", ctx.CallersAffected[0].FunctionModified)
	assert.Equal(t, []string{"main.rs:2"}, ctx.CallersAffected[0].CalledFrom)
}

func TestAnalyzeDiff_DeletedFileSkipped(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)

	withMockGit(t, &git.MockOperations{
		Changes: []git.FileChange{
			{Path: "gone.rs", Lines: map[int]bool{1: true}},
		},
	})

	ctx, err := analyzeDiff(".", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, ctx.FilesChanged)
	assert.Empty(t, ctx.CallersAffected)
}

func TestAnalyzeDiff_UnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)

	writeSource(t, dir, "data.csv", "a,b,c\n1,2,3\n")

	withMockGit(t, &git.MockOperations{
		Changes: []git.FileChange{
			{Path: "data.csv", Insertions: 2, Lines: map[int]bool{1: true, 2: true}},
		},
	})

	ctx, err := analyzeDiff(".", "HEAD")
	require.NoError(t, err)
	require.Len(t, ctx.FilesChanged, 1)
	assert.Equal(t, 2, ctx.FilesChanged[0].Insertions)
	assert.Empty(t, ctx.FilesChanged[0].FunctionsModified)
}

func TestAnalyzeDiff_GitError(t *testing.T) {
	withMockGit(t, &git.MockOperations{Err: errors.New("not a repository")})

	_, err := analyzeDiff(".", "HEAD")
	assert.Error(t, err)
}

func TestDiffContextString(t *testing.T) {
	t.Parallel()

	ctx := DiffContext{
		RefName: "main",
		FilesChanged: []FileContext{
			{Path: "lib.rs", Insertions: 3, Deletions: 1},
		},
	}

	out := ctx.String()
	assert.Contains(t, out, "Diff context for: main")
	assert.Contains(t, out, "lib.rs (+3/-1)")
}
