package symbols

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractRustSymbols matches Rust item declarations. Unmatched nodes are
// recursed into so items nested in cfg blocks or macros are still found;
// impl bodies get their own restricted traversal.
func extractRustSymbols(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_item":
			if name := fieldText(child, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindFunction,
					Line:       startLine(child),
					Signature:  signatureUntil(child, source, '{'),
					DocComment: rustDocComment(child, source),
				})
			}
		case "struct_item":
			appendRustItem(child, source, syms, KindStruct)
		case "enum_item":
			appendRustItem(child, source, syms, KindEnum)
		case "trait_item":
			appendRustItem(child, source, syms, KindTrait)
		case "impl_item":
			extractRustImplMethods(child, source, syms)
		case "const_item":
			appendRustNamed(child, source, syms, KindConst)
		case "type_item":
			appendRustNamed(child, source, syms, KindType)
		case "mod_item":
			appendRustNamed(child, source, syms, KindModule)
		default:
			extractRustSymbols(child, source, syms)
		}
	}
}

// appendRustItem records a container item with its doc comment.
func appendRustItem(node *sitter.Node, source []byte, syms *[]Symbol, kind SymbolKind) {
	name := fieldText(node, "name", source)
	if name == "" {
		return
	}
	*syms = append(*syms, Symbol{
		Name:       name,
		Kind:       kind,
		Line:       startLine(node),
		DocComment: rustDocComment(node, source),
	})
}

// appendRustNamed records a plain named item (const, type alias, module).
func appendRustNamed(node *sitter.Node, source []byte, syms *[]Symbol, kind SymbolKind) {
	name := fieldText(node, "name", source)
	if name == "" {
		return
	}
	*syms = append(*syms, Symbol{Name: name, Kind: kind, Line: startLine(node)})
}

// extractRustImplMethods visits only the impl block's declaration_list,
// tagging nested function items as methods. The restricted traversal
// keeps the outer walk from double-counting them.
func extractRustImplMethods(node *sitter.Node, source []byte, syms *[]Symbol) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() != "declaration_list" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			item := child.Child(uint(j))
			if item.Kind() != "function_item" {
				continue
			}
			if name := fieldText(item, "name", source); name != "" {
				*syms = append(*syms, Symbol{
					Name:       name,
					Kind:       KindMethod,
					Line:       startLine(item),
					Signature:  signatureUntil(item, source, '{'),
					DocComment: rustDocComment(item, source),
				})
			}
		}
	}
}

// rustDocComment walks backward through comment siblings and returns the
// first one that follows a doc convention: ///, //!, or /** blocks.
// A non-comment sibling ends the walk.
func rustDocComment(node *sitter.Node, source []byte) string {
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		switch prev.Kind() {
		case "line_comment":
			text := nodeText(prev, source)
			if strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") {
				return strings.TrimSpace(text[3:])
			}
		case "block_comment":
			text := nodeText(prev, source)
			if strings.HasPrefix(text, "/**") {
				return cleanBlockDoc(text)
			}
		default:
			return ""
		}
	}
	return ""
}

// rustSkeleton renders the Rust outline. Impl blocks open a brace,
// indent their methods one level, and close it.
func rustSkeleton(node *sitter.Node, source []byte, b *strings.Builder, indent int) {
	pad := strings.Repeat("    ", indent)

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "function_item":
			b.WriteString(pad + signatureUntil(child, source, '{') + " { ... }\n")
		case "struct_item", "enum_item", "trait_item":
			text := string(source[child.StartByte():])
			if idx := strings.IndexByte(text, '{'); idx >= 0 {
				b.WriteString(pad + strings.TrimSpace(text[:idx]) + " { ... }\n")
			}
		case "impl_item":
			text := string(source[child.StartByte():])
			if idx := strings.IndexByte(text, '{'); idx >= 0 {
				b.WriteString(pad + strings.TrimSpace(text[:idx]) + " {\n")
				rustSkeleton(child, source, b, indent+1)
				b.WriteString(pad + "}\n")
			}
		case "declaration_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				item := child.Child(uint(j))
				if item.Kind() == "function_item" {
					b.WriteString(pad + signatureUntil(item, source, '{') + " { ... }\n")
				}
			}
		}
	}
}

// fieldText returns the text of a named-field child, or "" when absent.
func fieldText(node *sitter.Node, field string, source []byte) string {
	return nodeText(node.ChildByFieldName(field), source)
}
