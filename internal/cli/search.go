package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/symbols"
	"github.com/ctxkit/ctx/internal/walker"
)

// SearchResult is one match with optional surrounding context lines.
type SearchResult struct {
	Path    string   `json:"path"`
	Line    int      `json:"line"`
	Column  int      `json:"column"`
	Text    string   `json:"text"`
	Context []string `json:"context"`
}

// SearchResults holds all matches for one query.
type SearchResults struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

func (s SearchResults) String() string {
	var b strings.Builder
	for _, r := range s.Results {
		fmt.Fprintf(&b, "%s:%d:%s\n", r.Path, r.Line, r.Text)
		for _, ctx := range r.Context {
			fmt.Fprintf(&b, "  %s\n", ctx)
		}
	}
	if len(s.Results) == 0 {
		fmt.Fprintf(&b, "No results found for '%s'\n", s.Query)
	}
	return strings.TrimRight(b.String(), "\n")
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search for text, symbols, or callers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		symbolMode, _ := cmd.Flags().GetBool("symbol")
		callerMode, _ := cmd.Flags().GetBool("caller")
		contextLines, _ := cmd.Flags().GetInt("context")
		if !cmd.Flags().Changed("context") {
			contextLines = cfg.Search.ContextLines
		}

		var (
			results []SearchResult
			err     error
		)
		switch {
		case symbolMode:
			results, err = searchSymbols(".", query)
		case callerMode:
			results, err = searchCallers(".", query, contextLines)
		default:
			results, err = searchText(".", query, contextLines)
		}
		if err != nil {
			return err
		}

		return printResult(SearchResults{Query: query, Results: results})
	},
}

func init() {
	searchCmd.Flags().Bool("symbol", false, "search symbol names instead of text")
	searchCmd.Flags().Bool("caller", false, "search call sites of a function")
	searchCmd.Flags().IntP("context", "C", 2, "context lines around each match")
	rootCmd.AddCommand(searchCmd)
}

// searchText scans every non-binary file for a case-insensitive
// substring match.
func searchText(root, query string, contextLines int) ([]SearchResult, error) {
	results := []SearchResult{}
	queryLower := strings.ToLower(query)

	files, err := walker.Files(root, walker.Options{})
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		if walker.IsBinary(path) {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		lines := strings.Split(string(content), "\n")
		for idx, line := range lines {
			lower := strings.ToLower(line)
			col := strings.Index(lower, queryLower)
			if col < 0 {
				continue
			}
			results = append(results, SearchResult{
				Path:    path,
				Line:    idx + 1,
				Column:  col + 1,
				Text:    line,
				Context: contextAround(lines, idx, contextLines),
			})
		}
	}

	return results, nil
}

// searchSymbols matches extracted symbol names case-insensitively.
func searchSymbols(root, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	queryLower := strings.ToLower(query)

	err := eachParsedFile(root, func(path string, source []byte, l lang.Language, syms []symbols.Symbol) {
		for _, sym := range syms {
			if !strings.Contains(strings.ToLower(sym.Name), queryLower) {
				continue
			}
			text := sym.Name
			if sym.Signature != "" {
				text = sym.Signature
			}
			results = append(results, SearchResult{
				Path:    path,
				Line:    sym.Line,
				Column:  1,
				Text:    fmt.Sprintf("[%s] %s", sym.Kind, text),
				Context: []string{},
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// searchCallers finds likely call sites of a function by textual
// pattern, skipping lines that look like definitions.
func searchCallers(root, name string, contextLines int) ([]SearchResult, error) {
	results := []SearchResult{}
	patterns := []string{
		name + "(",
		name + " (",
		"." + name + "(",
		"self." + name + "(",
	}

	files, err := walker.Files(root, walker.Options{})
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		if _, ok := lang.FromPath(path); !ok {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		lines := strings.Split(string(content), "\n")
		for idx, line := range lines {
			isCall := false
			for _, p := range patterns {
				if strings.Contains(line, p) {
					isCall = true
					break
				}
			}
			isDefinition := strings.Contains(line, "fn ") ||
				strings.Contains(line, "def ") ||
				strings.Contains(line, "function ") ||
				strings.Contains(line, "func ")

			if isCall && !isDefinition {
				results = append(results, SearchResult{
					Path:    path,
					Line:    idx + 1,
					Column:  1,
					Text:    line,
					Context: contextAround(lines, idx, contextLines),
				})
			}
		}
	}

	return results, nil
}

// contextAround collects numbered lines around idx, excluding idx itself.
func contextAround(lines []string, idx, contextLines int) []string {
	start := idx - contextLines
	if start < 0 {
		start = 0
	}
	end := idx + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	ctx := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == idx {
			continue
		}
		ctx = append(ctx, fmt.Sprintf("%d: %s", i+1, lines[i]))
	}
	return ctx
}

// eachParsedFile parses every supported file under root and hands the
// symbol list to fn. Unreadable or unparsable files are skipped.
func eachParsedFile(root string, fn func(path string, source []byte, l lang.Language, syms []symbols.Symbol)) error {
	files, err := walker.Files(root, walker.Options{})
	if err != nil {
		return err
	}

	for _, path := range files {
		l, ok := lang.FromPath(path)
		if !ok {
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		tree, err := l.Parse(source)
		if err != nil {
			continue
		}
		syms := symbols.Extract(tree.RootNode(), source, l)
		tree.Close()
		fn(path, source, l, syms)
	}
	return nil
}
