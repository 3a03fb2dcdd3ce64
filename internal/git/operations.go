// Package git shells out to the git binary for diffs, status, and
// history statistics. Nothing here links libgit; plain `git` keeps the
// behavior identical to what a developer sees on the command line.
package git

import (
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Status is a snapshot of the working tree.
type Status struct {
	Branch         string   `json:"branch"`
	IsDirty        bool     `json:"is_dirty"`
	StagedFiles    []string `json:"staged_files"`
	ModifiedFiles  []string `json:"modified_files"`
	UntrackedFiles []string `json:"untracked_files"`
}

// Commit is one entry of the recent history.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Time    string `json:"time"`
	TimeAgo string `json:"time_ago"`
}

// CoChange counts how often another file appeared in the same commits
// as a target file.
type CoChange struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// HotDirectory counts recent change activity under one directory.
type HotDirectory struct {
	Path        string `json:"path"`
	CommitCount int    `json:"commit_count"`
}

// FileActivity summarizes how often and how recently one file changed.
type FileActivity struct {
	Path         string `json:"path"`
	CommitCount  int    `json:"commit_count"`
	LastModified string `json:"last_modified"`
	LastAuthor   string `json:"last_author"`
}

// Operations defines the git interactions the commands need.
// An interface so tests can substitute canned results.
type Operations interface {
	// Root returns the repository's top-level directory.
	Root(path string) (string, error)

	// CurrentBranch returns the checked-out branch name, or
	// "detached-{short-hash}" for a detached HEAD.
	CurrentBranch(path string) string

	// ChangedFiles diffs the working tree (ref "" or "HEAD") or the
	// given ref against HEAD, returning per-file changed line sets.
	ChangedFiles(path, ref string) ([]FileChange, error)

	// Status reads branch and per-file state from git status.
	Status(path string) (*Status, error)

	// RecentCommits returns up to n commits from HEAD backward.
	RecentCommits(path string, n int) ([]Commit, error)

	// CoChangedFiles mines recent history for files committed together
	// with file, most frequent first, at most limit entries.
	CoChangedFiles(path, file string, limit int) ([]CoChange, error)

	// HotDirectories counts file changes per directory over the last
	// days days, most active first, at most 10 entries.
	HotDirectories(path string, days int) ([]HotDirectory, error)

	// RecentFileActivity aggregates per-file commit counts over the
	// last 100 commits, most active first, at most n entries.
	RecentFileActivity(path string, n int) ([]FileActivity, error)
}

type gitOps struct{}

// NewOperations returns the default implementation backed by exec.
func NewOperations() Operations {
	return &gitOps{}
}

func (g *gitOps) Root(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func (g *gitOps) CurrentBranch(path string) string {
	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil || len(strings.TrimSpace(string(output))) == 0 {
		cmd = exec.Command("git", "rev-parse", "--short", "HEAD")
		cmd.Dir = path
		output, err = cmd.Output()
		if err != nil {
			return "unknown"
		}
		return "detached-" + strings.TrimSpace(string(output))
	}
	return strings.TrimSpace(string(output))
}

func (g *gitOps) ChangedFiles(path, ref string) ([]FileChange, error) {
	args := []string{"diff"}
	if ref == "" || ref == "HEAD" {
		args = append(args, "HEAD")
	} else {
		args = append(args, ref, "HEAD")
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return ParseChangedLines(output)
}

func (g *gitOps) Status(path string) (*Status, error) {
	status := &Status{Branch: g.CurrentBranch(path)}

	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if len(line) < 4 {
			continue
		}
		index, worktree := line[0], line[1]
		file := strings.TrimSpace(line[3:])

		if index == '?' && worktree == '?' {
			status.UntrackedFiles = append(status.UntrackedFiles, file)
			continue
		}
		if index != ' ' {
			status.StagedFiles = append(status.StagedFiles, file)
		}
		if worktree == 'M' || worktree == 'D' {
			status.ModifiedFiles = append(status.ModifiedFiles, file)
		}
	}

	status.IsDirty = len(status.StagedFiles) > 0 || len(status.ModifiedFiles) > 0
	return status, nil
}

func (g *gitOps) RecentCommits(path string, n int) ([]Commit, error) {
	cmd := exec.Command("git", "log", "-n", strconv.Itoa(n), "--pretty=format:%h%x09%an%x09%at%x09%s")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		ts, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			continue
		}
		when := time.Unix(ts, 0)
		commits = append(commits, Commit{
			SHA:     parts[0],
			Author:  parts[1],
			Message: parts[3],
			Time:    when.Local().Format("2006-01-02 15:04"),
			TimeAgo: TimeAgo(time.Since(when)),
		})
	}
	return commits, nil
}

func (g *gitOps) CoChangedFiles(path, file string, limit int) ([]CoChange, error) {
	// Name-only log over the last 500 commits; \x01 separates commits.
	cmd := exec.Command("git", "log", "-n", "500", "--pretty=format:%x01", "--name-only")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	counts := map[string]int{}
	for _, block := range strings.Split(string(output), "\x01") {
		var files []string
		containsTarget := false
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line == file {
				containsTarget = true
			}
			files = append(files, line)
		}
		if !containsTarget {
			continue
		}
		for _, f := range files {
			if f != file {
				counts[f]++
			}
		}
	}

	result := make([]CoChange, 0, len(counts))
	for f, c := range counts {
		result = append(result, CoChange{Path: f, Count: c})
	}
	sortCoChanges(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (g *gitOps) HotDirectories(path string, days int) ([]HotDirectory, error) {
	since := fmt.Sprintf("--since=%d days ago", days)
	cmd := exec.Command("git", "log", since, "--name-only", "--pretty=format:")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	counts := map[string]int{}
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		dir := "."
		if idx := strings.LastIndexByte(line, '/'); idx >= 0 {
			dir = line[:idx]
		}
		counts[dir]++
	}

	hot := make([]HotDirectory, 0, len(counts))
	for dir, c := range counts {
		hot = append(hot, HotDirectory{Path: dir, CommitCount: c})
	}
	sort.Slice(hot, func(i, j int) bool {
		if hot[i].CommitCount != hot[j].CommitCount {
			return hot[i].CommitCount > hot[j].CommitCount
		}
		return hot[i].Path < hot[j].Path
	})
	if len(hot) > 10 {
		hot = hot[:10]
	}
	return hot, nil
}

func (g *gitOps) RecentFileActivity(path string, n int) ([]FileActivity, error) {
	// \x01 marks each commit header so file lists can be attributed.
	cmd := exec.Command("git", "log", "-n", "100", "--name-only", "--pretty=format:%x01%at%x09%an")
	cmd.Dir = path
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}
	return parseFileActivity(string(output), n, time.Now()), nil
}

// parseFileActivity folds a name-only log into per-file counts. The
// newest commit touching a file supplies its age and author.
func parseFileActivity(log string, n int, now time.Time) []FileActivity {
	type record struct {
		count  int
		when   int64
		author string
	}
	records := map[string]*record{}

	for _, block := range strings.Split(log, "\x01") {
		lines := strings.Split(block, "\n")
		header := strings.SplitN(strings.TrimSpace(lines[0]), "\t", 2)
		if len(header) != 2 {
			continue
		}
		ts, err := strconv.ParseInt(header[0], 10, 64)
		if err != nil {
			continue
		}
		author := header[1]

		for _, line := range lines[1:] {
			file := strings.TrimSpace(line)
			if file == "" {
				continue
			}
			r, ok := records[file]
			if !ok {
				r = &record{when: ts, author: author}
				records[file] = r
			}
			r.count++
			if ts > r.when {
				r.when = ts
				r.author = author
			}
		}
	}

	activity := make([]FileActivity, 0, len(records))
	for file, r := range records {
		activity = append(activity, FileActivity{
			Path:         file,
			CommitCount:  r.count,
			LastModified: TimeAgo(now.Sub(time.Unix(r.when, 0))),
			LastAuthor:   r.author,
		})
	}
	sort.Slice(activity, func(i, j int) bool {
		if activity[i].CommitCount != activity[j].CommitCount {
			return activity[i].CommitCount > activity[j].CommitCount
		}
		return activity[i].Path < activity[j].Path
	})
	if len(activity) > n {
		activity = activity[:n]
	}
	return activity
}

// sortCoChanges orders by count descending, then path, for stable output.
func sortCoChanges(changes []CoChange) {
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Count != changes[j].Count {
			return changes[i].Count > changes[j].Count
		}
		return changes[i].Path < changes[j].Path
	})
}

// TimeAgo renders a duration as a compact relative age.
func TimeAgo(d time.Duration) string {
	seconds := int64(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return fmt.Sprintf("%dw ago", seconds/604800)
	}
}
