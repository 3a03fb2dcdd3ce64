package symbols

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractPythonSymbols matches def and class statements at any nesting
// depth outside class bodies; class bodies get a restricted traversal
// that tags their functions as methods.
func extractPythonSymbols(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_definition":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindFunction,
					Line:       startLine(child),
					Signature:  signatureUntil(child, source, ':'),
					DocComment: pythonDocstring(child, source),
				})
			}
		case "class_definition":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindClass,
					Line:       startLine(child),
					DocComment: pythonDocstring(child, source),
				})
			}
			extractPythonClassMethods(child, source, syms)
		default:
			extractPythonSymbols(child, source, syms)
		}
	}
}

// extractPythonClassMethods visits only the class's block, tagging
// nested function definitions as methods.
func extractPythonClassMethods(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "block" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			item := child.Child(uint(j))
			if item.Kind() != "function_definition" {
				continue
			}
			if name := fieldText(item, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindMethod,
					Line:       startLine(item),
					Signature:  signatureUntil(item, source, ':'),
					DocComment: pythonDocstring(item, source),
				})
			}
		}
	}
}

// pythonDocstring returns the first line of a docstring: a string
// literal appearing as the first statement of the definition's block.
// Empty docstrings count as absent.
func pythonDocstring(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "block" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			item := child.Child(uint(j))
			if item.Kind() == "expression_statement" {
				for k := 0; k < int(item.ChildCount()); k++ {
					expr := item.Child(uint(k))
					if expr.Kind() != "string" {
						continue
					}
					text := nodeText(expr, source)
					text = strings.TrimPrefix(text, `"""`)
					text = strings.TrimPrefix(text, "'''")
					text = strings.TrimSuffix(text, `"""`)
					text = strings.TrimSuffix(text, "'''")
					text = strings.TrimSpace(text)
					if text != "" {
						first, _, _ := strings.Cut(text, "\n")
						return first
					}
				}
			}
			// Only the first statement can be a docstring.
			break
		}
	}
	return ""
}

// pythonSkeleton renders the indentation-style outline: signatures end
// with a colon and bodies elide to "...".
func pythonSkeleton(node *sitter.Node, source []byte, b *strings.Builder, indent int) {
	pad := strings.Repeat("    ", indent)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_definition":
			sig := signatureUntil(child, source, ':')
			b.WriteString(pad + sig + ":\n" + pad + "    ...\n")
		case "class_definition":
			if name := fieldText(child, "name", source); name != "" {
				b.WriteString(pad + "class " + name + ":\n")
				pythonSkeleton(child, source, b, indent+1)
			}
		case "block":
			pythonSkeleton(child, source, b, indent)
		}
	}
}
