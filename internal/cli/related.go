package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/symbols"
	"github.com/ctxkit/ctx/internal/walker"
)

// RelatedFile is one neighbor of the source file with the evidence
// that ties them together.
type RelatedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RelatedFiles groups the neighbors of one file by relationship.
type RelatedFiles struct {
	Source     string        `json:"source"`
	Imports    []RelatedFile `json:"imports"`
	ImportedBy []RelatedFile `json:"imported_by"`
	CoChanged  []RelatedFile `json:"co_changed"`
	TestFiles  []RelatedFile `json:"test_files"`
}

func (r RelatedFiles) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Related to: %s\n", r.Source)

	section := func(title string, files []RelatedFile, withReason bool) {
		if len(files) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, f := range files {
			if withReason {
				fmt.Fprintf(&b, "  %s (%s)\n", f.Path, f.Reason)
			} else {
				fmt.Fprintf(&b, "  %s\n", f.Path)
			}
		}
	}

	section("Imports", r.Imports, true)
	section("Imported by", r.ImportedBy, true)
	section("Commonly edited together", r.CoChanged, true)
	section("Test files", r.TestFiles, false)

	return strings.TrimRight(b.String(), "\n")
}

var relatedCmd = &cobra.Command{
	Use:   "related FILE",
	Short: "Find files related to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file does not exist: %s", path)
		}

		related := RelatedFiles{
			Source:     path,
			Imports:    findImports(path),
			ImportedBy: findImportedBy(".", path),
			CoChanged:  findCoChanged(path),
			TestFiles:  findTestFiles(".", path),
		}
		return printResult(related)
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)
}

// findImports resolves the file's import statements to local files.
// Unresolvable imports (external packages) are dropped.
func findImports(path string) []RelatedFile {
	related := []RelatedFile{}

	l, ok := lang.FromPath(path)
	if !ok {
		return related
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return related
	}
	tree, err := l.Parse(source)
	if err != nil {
		return related
	}
	defer tree.Close()

	for _, imp := range symbols.Imports(tree.RootNode(), source, l) {
		if resolved, ok := resolveImport(imp, path, l); ok {
			related = append(related, RelatedFile{Path: resolved, Reason: imp})
		}
	}
	return related
}

// findImportedBy scans the tree for files whose imports mention the
// target's stem.
func findImportedBy(root, path string) []RelatedFile {
	related := []RelatedFile{}
	stem := fileStem(path)
	if stem == "" {
		return related
	}

	_ = eachParsedFile(root, func(entry string, source []byte, l lang.Language, _ []symbols.Symbol) {
		if samePath(entry, path) {
			return
		}
		tree, err := l.Parse(source)
		if err != nil {
			return
		}
		defer tree.Close()

		for _, imp := range symbols.Imports(tree.RootNode(), source, l) {
			if strings.Contains(imp, stem) {
				related = append(related, RelatedFile{Path: entry, Reason: imp})
				break
			}
		}
	})
	return related
}

// findCoChanged asks git which files historically change in the same
// commits. Outside a repository it returns nothing.
func findCoChanged(path string) []RelatedFile {
	related := []RelatedFile{}

	root, err := gitOps.Root(".")
	if err != nil {
		return related
	}
	rel := path
	if abs, err := filepath.Abs(path); err == nil {
		if r, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(r, "..") {
			rel = filepath.ToSlash(r)
		}
	}

	coChanges, err := gitOps.CoChangedFiles(".", rel, 10)
	if err != nil {
		return related
	}
	for _, cc := range coChanges {
		related = append(related, RelatedFile{
			Path:   cc.Path,
			Reason: fmt.Sprintf("%d commits together", cc.Count),
		})
	}
	return related
}

// findTestFiles matches conventional test-file stems and tests/
// directories against the source stem.
func findTestFiles(root, path string) []RelatedFile {
	related := []RelatedFile{}
	stem := fileStem(path)
	if stem == "" {
		return related
	}

	patterns := []string{
		stem + "_test",
		"test_" + stem,
		stem + ".test",
		stem + ".spec",
		stem + "_spec",
	}

	files, err := walker.Files(root, walker.Options{})
	if err != nil {
		return related
	}

	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			related = append(related, RelatedFile{Path: p, Reason: "test file"})
		}
	}

	for _, entry := range files {
		entryStem := fileStem(entry)
		for _, pattern := range patterns {
			if entryStem == pattern {
				add(entry)
			}
		}

		slashed := filepath.ToSlash(entry)
		if (strings.Contains(slashed, "/tests/") || strings.Contains(slashed, "/test/")) &&
			strings.Contains(slashed, stem) {
			add(entry)
		}
	}
	return related
}

// resolveImport maps an import statement to a file on disk, per
// language convention. Only local, existing targets resolve.
func resolveImport(imp, source string, l lang.Language) (string, bool) {
	switch l {
	case lang.Rust:
		spec := strings.TrimSuffix(strings.TrimPrefix(imp, "use "), ";")
		parts := strings.Split(spec, "::")
		module := strings.TrimSpace(parts[len(parts)-1])
		if module == "" {
			return "", false
		}
		parent := filepath.Dir(source)
		for _, candidate := range []string{
			filepath.Join(parent, module+".rs"),
			filepath.Join(parent, module, "mod.rs"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
		}

	case lang.Python:
		var pathPart string
		if strings.HasPrefix(imp, "from ") {
			pathPart = strings.Fields(strings.TrimPrefix(imp, "from "))[0]
		} else {
			fields := strings.Fields(strings.TrimPrefix(imp, "import "))
			if len(fields) == 0 {
				return "", false
			}
			pathPart = fields[0]
		}
		candidate := strings.ReplaceAll(pathPart, ".", "/") + ".py"
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

	case lang.JavaScript, lang.TypeScript:
		spec, ok := quotedImportPath(imp)
		if !ok || !strings.HasPrefix(spec, ".") {
			return "", false
		}
		parent := filepath.Dir(source)
		for _, ext := range []string{"", ".js", ".ts", ".jsx", ".tsx", "/index.js", "/index.ts"} {
			candidate := filepath.Join(parent, spec+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}

	return "", false
}

// quotedImportPath pulls the string literal out of a JS/TS import.
func quotedImportPath(imp string) (string, bool) {
	start := strings.IndexAny(imp, `'"`)
	if start < 0 {
		return "", false
	}
	rest := imp[start+1:]
	end := strings.IndexAny(rest, `'"`)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
