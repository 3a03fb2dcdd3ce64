package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/git"
)

// Test Plan for status:
// - Git state, project identity, and history extras combine into one report
// - History extras are best-effort and never fail the command
// - A failing core status propagates
// - Human rendering shows dirty marker, change counts, and diff stats

func TestProjectStatus(t *testing.T) {
	dir := t.TempDir()
	inDir(t, dir)

	writeSource(t, dir, "Cargo.toml", "[package]\nname = \"widget\"\n")

	withMockGit(t, &git.MockOperations{
		Branch: "feature/x",
		StatusValue: &git.Status{
			Branch:         "feature/x",
			IsDirty:        true,
			StagedFiles:    []string{"a.rs"},
			ModifiedFiles:  []string{"b.rs", "c.rs"},
			UntrackedFiles: []string{"new.rs"},
		},
		Commits: []git.Commit{
			{SHA: "abc1234", Message: "tighten parser", TimeAgo: "2h ago"},
		},
		HotDirs: []git.HotDirectory{
			{Path: "src", CommitCount: 9},
		},
		Changes: []git.FileChange{
			{Path: "b.rs", Insertions: 4, Deletions: 2},
			{Path: "c.rs", Insertions: 1, Deletions: 0},
		},
	})

	status, err := projectStatus(".")
	require.NoError(t, err)

	assert.Equal(t, "widget", status.ProjectName)
	assert.Equal(t, "rust", status.ProjectType)
	assert.Equal(t, "feature/x", status.Branch)
	assert.True(t, status.IsDirty)
	assert.Equal(t, 1, status.StagedCount)
	assert.Equal(t, 2, status.ModifiedCount)
	assert.Equal(t, 1, status.UntrackedCount)
	require.Len(t, status.RecentCommits, 1)
	require.Len(t, status.HotDirectories, 1)
	require.NotNil(t, status.DiffStats)
	assert.Equal(t, 5, status.DiffStats.Insertions)
	assert.Equal(t, 2, status.DiffStats.Deletions)

	out := status.String()
	assert.Contains(t, out, "widget (rust)")
	assert.Contains(t, out, "Branch: feature/x*")
	assert.Contains(t, out, "Changes: 1 staged, 2 modified, 1 untracked")
	assert.Contains(t, out, "Diff: +5 -2")
	assert.Contains(t, out, "abc1234 tighten parser (2h ago)")
	assert.Contains(t, out, "src (9 commits)")
}

func TestProjectStatus_GitError(t *testing.T) {
	withMockGit(t, &git.MockOperations{Err: errors.New("no repository")})

	_, err := projectStatus(".")
	assert.Error(t, err)
}
