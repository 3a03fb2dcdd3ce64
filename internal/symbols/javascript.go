package symbols

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractJSSymbols serves both JavaScript and TypeScript; the interface
// and type-alias arms are only reachable under the TypeScript grammar.
// Export statements and unmatched nodes are recursed into so wrapped
// declarations are still found.
func extractJSSymbols(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_declaration":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindFunction,
					Line:       startLine(child),
					Signature:  signatureUntil(child, source, '{'),
					DocComment: jsDocComment(child, source),
				})
			}
		case "class_declaration":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindClass,
					Line:       startLine(child),
					DocComment: jsDocComment(child, source),
				})
			}
			extractJSClassMethods(child, source, syms)
		case "interface_declaration":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindInterface,
					Line:       startLine(child),
					DocComment: jsDocComment(child, source),
				})
			}
		case "type_alias_declaration":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindType,
					Line:       startLine(child),
					DocComment: jsDocComment(child, source),
				})
			}
		case "lexical_declaration", "variable_declaration":
			extractJSVariables(child, source, syms)
		case "export_statement":
			extractJSSymbols(child, source, syms)
		default:
			extractJSSymbols(child, source, syms)
		}
	}
}

// extractJSClassMethods visits only the class_body, tagging method
// definitions as methods.
func extractJSClassMethods(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "class_body" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			item := child.Child(uint(j))
			if item.Kind() != "method_definition" {
				continue
			}
			if name := fieldText(item, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindMethod,
					Line:       startLine(item),
					DocComment: jsDocComment(item, source),
				})
			}
		}
	}
}

// extractJSVariables promotes declarators whose initializer is a
// function or arrow function to functions; every other initialized
// declarator becomes a variable. Declarators without an initializer are
// skipped.
func extractJSVariables(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "variable_declarator" {
			continue
		}
		name := fieldText(child, "name", source)
		if name == "" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil {
			continue
		}
		kind := KindVariable
		switch value.Kind() {
		case "arrow_function", "function", "function_expression":
			kind = KindFunction
		}
		*syms = append(*syms, Symbol{Name: name, Kind: kind, Line: startLine(child)})
	}
}

// jsDocComment walks backward through comment siblings and returns the
// first JSDoc block (/** ... */). A non-comment sibling ends the walk.
func jsDocComment(node *sitter.Node, source []byte) string {
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if prev.Kind() != "comment" {
			return ""
		}
		text := nodeText(prev, source)
		if strings.HasPrefix(text, "/**") {
			return cleanBlockDoc(text)
		}
	}
	return ""
}

// jsSkeleton renders the brace-style outline shared by JavaScript and
// TypeScript.
func jsSkeleton(node *sitter.Node, source []byte, b *strings.Builder, indent int) {
	pad := strings.Repeat("    ", indent)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_declaration":
			b.WriteString(pad + signatureUntil(child, source, '{') + " { ... }\n")
		case "class_declaration":
			if name := fieldText(child, "name", source); name != "" {
				b.WriteString(pad + "class " + name + " {\n")
				jsSkeleton(child, source, b, indent+1)
				b.WriteString(pad + "}\n")
			}
		case "class_body":
			for j := 0; j < int(child.ChildCount()); j++ {
				item := child.Child(uint(j))
				if item.Kind() == "method_definition" {
					if name := fieldText(item, "name", source); name != "" {
						b.WriteString(pad + name + "() { ... }\n")
					}
				}
			}
		case "export_statement":
			jsSkeleton(child, source, b, indent)
		}
	}
}
