// Package impact maps diff-changed line numbers onto enclosing
// declarations and finds probable call sites for modified functions.
package impact

import (
	"strings"

	"github.com/ctxkit/ctx/internal/symbols"
)

// FunctionContext describes one function or method whose heuristic
// source range intersects a set of changed lines.
type FunctionContext struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	Signature string `json:"signature,omitempty"`
}

// FunctionEnd estimates the last line of the declaration starting at
// lines[start] (0-indexed) and returns it 1-indexed.
//
// Brace languages: characters are counted from the declaration's own
// line onward, +1 for '{' and -1 for '}'; the end is the line where the
// count first returns to zero after going positive. The scan is raw
// character counting on purpose — braces inside string or comment
// literals desynchronize it. Token-aware scanning was considered and
// rejected to keep parity with the known approximation.
//
// Indentation languages never open a brace; the end is then the line
// before the first later non-blank line indented at or below the
// declaration. With neither signal, the file's last line is the end.
func FunctionEnd(lines []string, start int) int {
	if start >= len(lines) {
		return start + 1
	}

	startText := lines[start]
	baseIndent := len(startText) - len(strings.TrimLeft(startText, " \t"))

	braceCount := 0
	foundOpening := false

	for i := start; i < len(lines); i++ {
		line := lines[i]
		for _, c := range line {
			if c == '{' {
				braceCount++
				foundOpening = true
			} else if c == '}' {
				braceCount--
			}
		}

		if foundOpening && braceCount == 0 {
			return i + 1
		}

		if !foundOpening && i > start {
			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			if strings.TrimSpace(line) != "" && indent <= baseIndent {
				return i
			}
		}
	}

	return len(lines)
}

// ModifiedFunctions returns the function and method symbols whose
// [start, end] range contains any changed line. Other symbol kinds are
// ignored; order follows the symbol list.
func ModifiedFunctions(syms []symbols.Symbol, changedLines map[int]bool, lines []string) []FunctionContext {
	modified := []FunctionContext{}

	for _, sym := range syms {
		if sym.Kind != symbols.KindFunction && sym.Kind != symbols.KindMethod {
			continue
		}

		end := FunctionEnd(lines, sym.Line-1)

		touched := false
		for l := sym.Line; l <= end; l++ {
			if changedLines[l] {
				touched = true
				break
			}
		}

		if touched {
			modified = append(modified, FunctionContext{
				Name:      sym.Name,
				Kind:      sym.Kind.Short(),
				StartLine: sym.Line,
				Signature: sym.Signature,
			})
		}
	}

	return modified
}
