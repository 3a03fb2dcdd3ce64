package symbols

// SymbolKind classifies an extracted declaration.
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
	KindStruct    SymbolKind = "struct"
	KindClass     SymbolKind = "class"
	KindEnum      SymbolKind = "enum"
	KindInterface SymbolKind = "interface"
	KindTrait     SymbolKind = "trait"
	KindConst     SymbolKind = "const"
	KindVariable  SymbolKind = "variable"
	KindType      SymbolKind = "type"
	KindModule    SymbolKind = "module"
)

// Short returns the compact form used in human-readable listings.
func (k SymbolKind) Short() string {
	switch k {
	case KindFunction:
		return "fn"
	case KindVariable:
		return "var"
	case KindModule:
		return "mod"
	default:
		return string(k)
	}
}

// Symbol is one named declaration extracted from a source file.
type Symbol struct {
	Name       string     `json:"name"`
	Kind       SymbolKind `json:"kind"`
	Line       int        `json:"line"`
	Signature  string     `json:"signature,omitempty"`
	DocComment string     `json:"doc_comment,omitempty"`
}
