package git

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// FileChange carries the changed line set of one file in a diff,
// expressed in new-file line numbers.
type FileChange struct {
	Path       string
	Insertions int
	Deletions  int
	// Lines holds new-file line numbers touched by the diff. Added
	// lines contribute their own number; a deleted line contributes
	// the new-file position where the deletion happened.
	Lines map[int]bool
}

// ParseChangedLines parses unified diff output into per-file changed
// line sets, preserving the diff's file order.
func ParseChangedLines(raw []byte) ([]FileChange, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(raw)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	changes := make([]FileChange, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		change := FileChange{
			Path:  diffPath(fd),
			Lines: map[int]bool{},
		}

		for _, hunk := range fd.Hunks {
			newLine := int(hunk.NewStartLine)
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+"):
					change.Lines[newLine] = true
					change.Insertions++
					newLine++
				case strings.HasPrefix(line, "-"):
					change.Lines[newLine] = true
					change.Deletions++
				case line == `\ No newline at end of file`:
					// marker, not content
				default:
					newLine++
				}
			}
		}

		changes = append(changes, change)
	}

	return changes, nil
}

// diffPath strips the a/ and b/ prefixes git puts on diff names,
// preferring the new-file side.
func diffPath(fd *diff.FileDiff) string {
	name := fd.NewName
	if name == "/dev/null" || name == "" {
		name = fd.OrigName
	}
	name = strings.TrimPrefix(name, "b/")
	name = strings.TrimPrefix(name, "a/")
	return name
}
