// Package symbols extracts declarations, skeletons, and imports from
// tree-sitter parse trees. One visitor per language family; the public
// functions dispatch on the language tag.
package symbols

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ctxkit/ctx/internal/lang"
)

// Extract walks the tree and returns declarations in source order.
// It is total: malformed trees yield fewer symbols, never an error.
func Extract(root *sitter.Node, source []byte, l lang.Language) []Symbol {
	syms := []Symbol{}
	switch l {
	case lang.Rust:
		extractRustSymbols(root, source, &syms)
	case lang.Python:
		extractPythonSymbols(root, source, &syms)
	case lang.JavaScript, lang.TypeScript:
		extractJSSymbols(root, source, &syms)
	}
	return syms
}

// Skeleton renders an indented, elided outline of the file's declarations.
func Skeleton(root *sitter.Node, source []byte, l lang.Language) string {
	var b strings.Builder
	switch l {
	case lang.Rust:
		rustSkeleton(root, source, &b, 0)
	case lang.Python:
		pythonSkeleton(root, source, &b, 0)
	case lang.JavaScript, lang.TypeScript:
		jsSkeleton(root, source, &b, 0)
	}
	return b.String()
}

// Imports returns the verbatim text of top-level import declarations.
// Only direct children of the root are inspected: imports are a
// top-level convention in all supported languages.
func Imports(root *sitter.Node, source []byte, l lang.Language) []string {
	imports := []string{}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		switch l {
		case lang.Rust:
			if child.Kind() == "use_declaration" {
				imports = append(imports, nodeText(child, source))
			}
		case lang.Python:
			if k := child.Kind(); k == "import_statement" || k == "import_from_statement" {
				imports = append(imports, nodeText(child, source))
			}
		case lang.JavaScript, lang.TypeScript:
			if child.Kind() == "import_statement" {
				imports = append(imports, nodeText(child, source))
			}
		}
	}
	return imports
}

// nodeText returns the source text spanned by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine returns a node's 1-indexed starting line.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// signatureUntil slices source from the node's start byte and truncates
// at the first occurrence of delim, the language's block-opening
// character. Falls back to the declaration's first line.
func signatureUntil(node *sitter.Node, source []byte, delim byte) string {
	text := string(source[node.StartByte():])
	if idx := strings.IndexByte(text, delim); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	if line, _, found := strings.Cut(text, "\n"); found {
		return line
	}
	return text
}

// cleanBlockDoc strips /** ... */ markers and per-line leading stars,
// joining the lines with spaces.
func cleanBlockDoc(text string) string {
	content := strings.TrimPrefix(text, "/**")
	content = strings.TrimSuffix(content, "*/")
	var parts []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "*"))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
