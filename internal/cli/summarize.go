package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/symbols"
	"github.com/ctxkit/ctx/internal/walker"
)

// FileSummary is the structural overview of a single file.
type FileSummary struct {
	Path     string           `json:"path"`
	Language string           `json:"language,omitempty"`
	Lines    int              `json:"lines"`
	Symbols  []symbols.Symbol `json:"symbols"`
	Imports  []string         `json:"imports"`
}

// DirectorySummary aggregates file summaries under one directory.
type DirectorySummary struct {
	Path      string        `json:"path"`
	FileCount int           `json:"file_count"`
	Files     []FileSummary `json:"files"`
}

// SkeletonView is the elided outline of a single file.
type SkeletonView struct {
	Path     string `json:"path"`
	Skeleton string `json:"skeleton"`
}

func (s FileSummary) String() string {
	var b strings.Builder

	langStr := ""
	if s.Language != "" {
		langStr = fmt.Sprintf(" [%s]", s.Language)
	}
	fmt.Fprintf(&b, "%s%s (%d lines)\n", s.Path, langStr, s.Lines)

	if len(s.Imports) > 0 {
		b.WriteString("\nImports:\n")
		for _, imp := range s.Imports {
			fmt.Fprintf(&b, "  %s\n", imp)
		}
	}

	if len(s.Symbols) > 0 {
		b.WriteString("\nSymbols:\n")
		for _, sym := range s.Symbols {
			if sym.Signature != "" {
				fmt.Fprintf(&b, "  %s:%d %s\n", sym.Kind.Short(), sym.Line, sym.Signature)
			} else {
				fmt.Fprintf(&b, "  %s:%d %s\n", sym.Kind.Short(), sym.Line, sym.Name)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (s DirectorySummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d files)\n", s.Path, s.FileCount)
	for _, f := range s.Files {
		b.WriteString("\n" + f.String() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s SkeletonView) String() string {
	return s.Path + ":\n" + s.Skeleton
}

// summaryReport renders one or many summaries; a single result
// marshals as itself rather than a one-element array.
type summaryReport struct {
	results []interface{ String() string }
}

func (r summaryReport) String() string {
	parts := make([]string, 0, len(r.results))
	for _, res := range r.results {
		parts = append(parts, res.String())
	}
	return strings.Join(parts, "\n\n"+strings.Repeat("=", 60)+"\n\n")
}

func (r summaryReport) MarshalJSON() ([]byte, error) {
	if len(r.results) == 1 {
		return json.Marshal(r.results[0])
	}
	return json.Marshal(r.results)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize PATH...",
	Short: "Summarize a file or directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		skeleton, _ := cmd.Flags().GetBool("skeleton")
		if !cmd.Flags().Changed("depth") {
			depth = cfg.Summarize.Depth
		}

		report := summaryReport{}
		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("path does not exist: %s", path)
			}

			switch {
			case !info.IsDir() && skeleton:
				view, err := skeletonView(path)
				if err != nil {
					return err
				}
				report.results = append(report.results, view)
			case !info.IsDir():
				summary, err := summarizeFile(path)
				if err != nil {
					return err
				}
				report.results = append(report.results, summary)
			default:
				summary, err := summarizeDirectory(path, depth)
				if err != nil {
					return err
				}
				report.results = append(report.results, summary)
			}
		}

		return printResult(report)
	},
}

func init() {
	summarizeCmd.Flags().IntP("depth", "d", 1, "maximum depth for directory summarization")
	summarizeCmd.Flags().Bool("skeleton", false, "show only function/class signatures")
	rootCmd.AddCommand(summarizeCmd)
}

// summarizeFile builds a FileSummary. Unsupported languages still get a
// line count; parse failures are surfaced to the caller.
func summarizeFile(path string) (FileSummary, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileSummary{}, fmt.Errorf("reading %s: %w", path, err)
	}

	summary := FileSummary{
		Path:    path,
		Lines:   countLines(source),
		Symbols: []symbols.Symbol{},
		Imports: []string{},
	}

	l, ok := lang.FromPath(path)
	if !ok {
		return summary, nil
	}
	summary.Language = l.Name()

	tree, err := l.Parse(source)
	if err != nil {
		return FileSummary{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	summary.Symbols = symbols.Extract(root, source, l)
	summary.Imports = symbols.Imports(root, source, l)
	return summary, nil
}

// summarizeDirectory summarizes supported files below path. One bad
// file never aborts the scan.
func summarizeDirectory(path string, depth int) (DirectorySummary, error) {
	summary := DirectorySummary{Path: path, Files: []FileSummary{}}

	err := walkSupportedFiles(path, depth, func(file string) {
		if fs, err := summarizeFile(file); err == nil {
			summary.Files = append(summary.Files, fs)
		}
	})
	if err != nil {
		return summary, err
	}

	summary.FileCount = len(summary.Files)
	return summary, nil
}

func skeletonView(path string) (SkeletonView, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return SkeletonView{}, fmt.Errorf("reading %s: %w", path, err)
	}

	l, ok := lang.FromPath(path)
	if !ok {
		return SkeletonView{}, fmt.Errorf("unsupported language: %s", path)
	}

	tree, err := l.Parse(source)
	if err != nil {
		return SkeletonView{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	return SkeletonView{
		Path:     path,
		Skeleton: symbols.Skeleton(tree.RootNode(), source, l),
	}, nil
}

// walkSupportedFiles visits files with a registered language under root.
func walkSupportedFiles(root string, depth int, fn func(path string)) error {
	files, err := walker.Files(root, walker.Options{MaxDepth: depth})
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := lang.FromPath(f); ok {
			fn(f)
		}
	}
	return nil
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := strings.Count(string(source), "\n")
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}
