// Package lang maps file extensions to supported languages and provides
// tree-sitter parse trees for them.
package lang

import (
	"errors"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language is one of the closed set of languages ctx understands.
type Language int

const (
	Rust Language = iota
	Python
	JavaScript
	TypeScript
)

// ErrParseFailed is returned when tree-sitter could not build a tree.
var ErrParseFailed = errors.New("failed to parse source")

var byExtension = map[string]Language{
	"rs":  Rust,
	"py":  Python,
	"js":  JavaScript,
	"jsx": JavaScript,
	"mjs": JavaScript,
	"cjs": JavaScript,
	"ts":  TypeScript,
	"tsx": TypeScript,
	"mts": TypeScript,
	"cts": TypeScript,
}

// FromExtension resolves a bare extension (no leading dot) to a Language.
func FromExtension(ext string) (Language, bool) {
	l, ok := byExtension[ext]
	return l, ok
}

// FromPath resolves a file path to a Language via its extension.
func FromPath(path string) (Language, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	return FromExtension(ext)
}

// Name returns the lowercase language name.
func (l Language) Name() string {
	switch l {
	case Rust:
		return "rust"
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	}
	return "unknown"
}

// Names lists all supported language names.
func Names() []string {
	return []string{"rust", "python", "javascript", "typescript"}
}

func (l Language) sitterLanguage() *sitter.Language {
	switch l {
	case Rust:
		return sitter.NewLanguage(rust.Language())
	case Python:
		return sitter.NewLanguage(python.Language())
	case JavaScript:
		return sitter.NewLanguage(javascript.Language())
	case TypeScript:
		return sitter.NewLanguage(typescript.LanguageTypescript())
	}
	return nil
}

// Parse builds a tree-sitter tree for the language.
// Callers own the returned tree and must Close it.
func (l Language) Parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(l.sitterLanguage())

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrParseFailed
	}
	return tree, nil
}

// ParseFile parses source for the language matching path's extension.
// Returns (nil, nil) for unsupported extensions: not knowing a language
// is not an error.
func ParseFile(path string, source []byte) (*sitter.Tree, error) {
	l, ok := FromPath(path)
	if !ok {
		return nil, nil
	}
	return l.Parse(source)
}
