package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxkit/ctx/internal/lang"
	"github.com/ctxkit/ctx/internal/symbols"
	"github.com/ctxkit/ctx/internal/walker"
)

// FileInfo is one file in the project map.
type FileInfo struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Symbols  int    `json:"symbols"`
}

// DirectoryInfo is one directory with its description and files.
type DirectoryInfo struct {
	Path        string     `json:"path"`
	Description string     `json:"description,omitempty"`
	Files       []FileInfo `json:"files"`
}

// ProjectMap is the directory-ordered overview of a tree.
type ProjectMap struct {
	Directories map[string]*DirectoryInfo `json:"directories"`
}

func (m ProjectMap) String() string {
	keys := make([]string, 0, len(m.Directories))
	for k := range m.Directories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		dir := m.Directories[k]
		desc := ""
		if dir.Description != "" {
			desc = "  # " + dir.Description
		}
		fmt.Fprintf(&b, "%s/%s\n", dir.Path, desc)
		for _, file := range dir.Files {
			langInfo := ""
			if file.Language != "" {
				langInfo = fmt.Sprintf(" [%s]", file.Language)
			}
			fmt.Fprintf(&b, "  %s%s\n", file.Name, langInfo)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var mapCmd = &cobra.Command{
	Use:   "map [PATH]",
	Short: "Show an annotated directory map",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		depth, _ := cmd.Flags().GetInt("depth")
		if !cmd.Flags().Changed("depth") {
			depth = cfg.Map.Depth
		}

		m, err := buildProjectMap(root, depth)
		if err != nil {
			return err
		}
		return printResult(m)
	},
}

func init() {
	mapCmd.Flags().IntP("depth", "d", 3, "maximum directory depth")
	rootCmd.AddCommand(mapCmd)
}

// buildProjectMap walks root and groups files under their directory,
// annotating directories from READMEs or module doc comments.
func buildProjectMap(root string, depth int) (ProjectMap, error) {
	m := ProjectMap{Directories: map[string]*DirectoryInfo{}}

	err := walker.Walk(root, walker.Options{MaxDepth: depth, IncludeDirs: true}, func(path string, d fs.DirEntry) error {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			m.Directories[rel] = &DirectoryInfo{
				Path:        rel,
				Description: directoryDescription(path),
				Files:       []FileInfo{},
			}
			return nil
		}

		info := FileInfo{Name: filepath.Base(path)}
		if l, ok := lang.FromPath(path); ok {
			info.Language = l.Name()
			info.Symbols = countSymbols(path, l)
		}

		parent := filepath.ToSlash(filepath.Dir(rel))
		dir, ok := m.Directories[parent]
		if !ok {
			dir = &DirectoryInfo{Path: parent, Files: []FileInfo{}}
			m.Directories[parent] = dir
		}
		dir.Files = append(dir.Files, info)
		return nil
	})
	if err != nil {
		return m, err
	}

	return m, nil
}

// directoryDescription pulls a one-line summary from a README or a
// module entry file's leading doc comment.
func directoryDescription(dir string) string {
	for _, name := range []string{"README.md", "README", "readme.md"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(content), "\n") {
			trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
			if trimmed != "" {
				return truncateRunes(trimmed, 60)
			}
		}
	}

	for _, name := range []string{"mod.rs", "lib.rs", "__init__.py", "index.ts", "index.js"} {
		if desc := fileDocComment(filepath.Join(dir, name)); desc != "" {
			return desc
		}
	}
	return ""
}

// fileDocComment scans the first lines of a file for a module-level
// doc comment in Rust, Python, or JSDoc style.
func fileDocComment(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(source), "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(trimmed, "//!"); ok {
			if desc := strings.TrimSpace(rest); desc != "" {
				return truncateRunes(desc, 60)
			}
		}

		if strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") {
			desc := strings.Trim(trimmed, `"'`)
			if desc = strings.TrimSpace(desc); desc != "" {
				return truncateRunes(desc, 60)
			}
		}

		if rest, ok := strings.CutPrefix(trimmed, "/**"); ok {
			if desc := strings.TrimSpace(strings.TrimLeft(rest, "*")); desc != "" {
				return truncateRunes(desc, 60)
			}
		}
	}
	return ""
}

func countSymbols(path string, l lang.Language) int {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	tree, err := l.Parse(source)
	if err != nil {
		return 0
	}
	defer tree.Close()
	return len(symbols.Extract(tree.RootNode(), source, l))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
