package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/git"
	"github.com/ctxkit/ctx/internal/impact"
	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/symbols"
	"github.com/ctxkit/ctx/internal/walker"
)

// FileContext is one changed file with the declarations its diff
// lines fall inside.
type FileContext struct {
	Path              string                   `json:"path"`
	Insertions        int                      `json:"insertions"`
	Deletions         int                      `json:"deletions"`
	FunctionsModified []impact.FunctionContext `json:"functions_modified"`
}

// DiffContext summarizes a diff as modified functions plus their
// probable callers.
type DiffContext struct {
	RefName         string              `json:"ref_name"`
	FilesChanged    []FileContext       `json:"files_changed"`
	CallersAffected []impact.CallerInfo `json:"callers_affected"`
}

func (d DiffContext) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diff context for: %s\n", d.RefName)

	for _, file := range d.FilesChanged {
		fmt.Fprintf(&b, "\n%s (+%d/-%d)\n", file.Path, file.Insertions, file.Deletions)
		if len(file.FunctionsModified) > 0 {
			b.WriteString("  Functions modified:\n")
			for _, fn := range file.FunctionsModified {
				text := fn.Name
				if fn.Signature != "" {
					text = fn.Signature
				}
				fmt.Fprintf(&b, "    %d:%s %s\n", fn.StartLine, fn.Kind, text)
			}
		}
	}

	if len(d.CallersAffected) > 0 {
		b.WriteString("\nCallers of modified functions:\n")
		for _, caller := range d.CallersAffected {
			fmt.Fprintf(&b, "  %s:\n", caller.FunctionModified)
			for _, loc := range caller.CalledFrom {
				fmt.Fprintf(&b, "    - %s\n", loc)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

var diffContextCmd = &cobra.Command{
	Use:   "diff-context [REF]",
	Short: "Show which functions a diff touches and who calls them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := "HEAD"
		if len(args) == 1 {
			ref = args[0]
		}

		ctx, err := analyzeDiff(".", ref)
		if err != nil {
			return err
		}
		return printResult(ctx)
	},
}

func init() {
	rootCmd.AddCommand(diffContextCmd)
}

// analyzeDiff diffs ref against HEAD (or HEAD against the working
// tree) and maps changed lines onto declarations.
func analyzeDiff(dir, ref string) (DiffContext, error) {
	changes, err := gitOps.ChangedFiles(dir, ref)
	if err != nil {
		return DiffContext{}, err
	}

	ctx := DiffContext{
		RefName:         ref,
		FilesChanged:    []FileContext{},
		CallersAffected: []impact.CallerInfo{},
	}

	var refs []impact.FunctionRef
	for _, change := range changes {
		// Deleted files have no current content to map lines onto.
		if _, err := os.Stat(change.Path); err != nil {
			continue
		}

		modified := modifiedFunctionsIn(change)
		for _, fn := range modified {
			refs = append(refs, impact.FunctionRef{File: change.Path, Name: fn.Name})
		}

		ctx.FilesChanged = append(ctx.FilesChanged, FileContext{
			Path:              change.Path,
			Insertions:        change.Insertions,
			Deletions:         change.Deletions,
			FunctionsModified: modified,
		})
	}

	if len(refs) > 0 {
		files, err := supportedFiles(dir)
		if err != nil {
			return ctx, err
		}
		// Empty caller lists add nothing to a diff report.
		for _, caller := range impact.ResolveCallers(refs, files) {
			if len(caller.CalledFrom) > 0 {
				ctx.CallersAffected = append(ctx.CallersAffected, caller)
			}
		}
	}

	return ctx, nil
}

// modifiedFunctionsIn extracts the file's symbols and intersects them
// with the change's line set. Unsupported or unparsable files yield
// nothing.
func modifiedFunctionsIn(change git.FileChange) []impact.FunctionContext {
	l, ok := lang.FromPath(change.Path)
	if !ok {
		return []impact.FunctionContext{}
	}
	source, err := os.ReadFile(change.Path)
	if err != nil {
		return []impact.FunctionContext{}
	}
	tree, err := l.Parse(source)
	if err != nil {
		return []impact.FunctionContext{}
	}
	defer tree.Close()

	syms := symbols.Extract(tree.RootNode(), source, l)
	lines := strings.Split(string(source), "\n")
	return impact.ModifiedFunctions(syms, change.Lines, lines)
}

// supportedFiles lists every file under dir with a registered language.
func supportedFiles(dir string) ([]string, error) {
	all, err := walker.Files(dir, walker.Options{})
	if err != nil {
		return nil, err
	}
	files := all[:0]
	for _, f := range all {
		if _, ok := lang.FromPath(f); ok {
			files = append(files, f)
		}
	}
	return files, nil
}
