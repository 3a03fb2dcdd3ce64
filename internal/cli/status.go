package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/git"
	"github.com/ctxkit/ctx/internal/lang"
)

// DiffStats totals insertions and deletions across the working tree.
type DiffStats struct {
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// ProjectStatus is the at-a-glance state of the repository.
type ProjectStatus struct {
	ProjectName    string             `json:"project_name,omitempty"`
	ProjectType    string             `json:"project_type,omitempty"`
	Branch         string             `json:"branch"`
	IsDirty        bool               `json:"is_dirty"`
	StagedCount    int                `json:"staged_count"`
	ModifiedCount  int                `json:"modified_count"`
	UntrackedCount int                `json:"untracked_count"`
	RecentCommits  []git.Commit       `json:"recent_commits"`
	HotDirectories []git.HotDirectory `json:"hot_directories"`
	DiffStats      *DiffStats         `json:"diff_stats,omitempty"`
}

func (s ProjectStatus) String() string {
	var b strings.Builder

	if s.ProjectName != "" {
		if s.ProjectType != "" {
			fmt.Fprintf(&b, "%s (%s)\n", s.ProjectName, s.ProjectType)
		} else {
			fmt.Fprintf(&b, "%s\n", s.ProjectName)
		}
	}

	dirty := ""
	if s.IsDirty {
		dirty = "*"
	}
	fmt.Fprintf(&b, "Branch: %s%s\n", s.Branch, dirty)

	if s.StagedCount > 0 || s.ModifiedCount > 0 || s.UntrackedCount > 0 {
		var parts []string
		if s.StagedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d staged", s.StagedCount))
		}
		if s.ModifiedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d modified", s.ModifiedCount))
		}
		if s.UntrackedCount > 0 {
			parts = append(parts, fmt.Sprintf("%d untracked", s.UntrackedCount))
		}
		fmt.Fprintf(&b, "Changes: %s\n", strings.Join(parts, ", "))
	}

	if s.DiffStats != nil && (s.DiffStats.Insertions > 0 || s.DiffStats.Deletions > 0) {
		fmt.Fprintf(&b, "Diff: +%d -%d\n", s.DiffStats.Insertions, s.DiffStats.Deletions)
	}

	if len(s.RecentCommits) > 0 {
		b.WriteString("\nRecent commits:\n")
		for _, c := range s.RecentCommits {
			fmt.Fprintf(&b, "  %s %s (%s)\n", c.SHA, c.Message, c.TimeAgo)
		}
	}

	if len(s.HotDirectories) > 0 {
		b.WriteString("\nHot directories (this week):\n")
		for i, d := range s.HotDirectories {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  %s (%d commits)\n", d.Path, d.CommitCount)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project and repository state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := projectStatus(".")
		if err != nil {
			return err
		}
		return printResult(status)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// projectStatus gathers git state plus project identity markers. The
// history extras are best-effort; only the core status can fail.
func projectStatus(dir string) (ProjectStatus, error) {
	gs, err := gitOps.Status(dir)
	if err != nil {
		return ProjectStatus{}, err
	}

	status := ProjectStatus{
		ProjectName:    lang.DetectProjectName(dir),
		ProjectType:    lang.DetectProjectType(dir),
		Branch:         gs.Branch,
		IsDirty:        gs.IsDirty,
		StagedCount:    len(gs.StagedFiles),
		ModifiedCount:  len(gs.ModifiedFiles),
		UntrackedCount: len(gs.UntrackedFiles),
		RecentCommits:  []git.Commit{},
		HotDirectories: []git.HotDirectory{},
	}

	if commits, err := gitOps.RecentCommits(dir, 5); err == nil {
		status.RecentCommits = commits
	}
	if hot, err := gitOps.HotDirectories(dir, 7); err == nil {
		status.HotDirectories = hot
	}
	if changes, err := gitOps.ChangedFiles(dir, "HEAD"); err == nil {
		stats := DiffStats{}
		for _, c := range changes {
			stats.Insertions += c.Insertions
			stats.Deletions += c.Deletions
		}
		status.DiffStats = &stats
	}

	return status, nil
}
