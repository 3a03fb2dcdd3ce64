// Package output selects between human, JSON, and compact-JSON
// rendering. Commands build displayable values; presentation stays here.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format is the requested output style.
type Format int

const (
	Human Format = iota
	JSON
	Compact
)

// ParseFormat maps a flag value to a Format, defaulting to Human.
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return JSON
	case "compact":
		return Compact
	default:
		return Human
	}
}

// Print writes data in the requested format. Human output uses the
// value's String method; JSON forms marshal the value itself.
func Print(w io.Writer, data interface{ String() string }, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case Compact:
		return json.NewEncoder(w).Encode(data)
	default:
		_, err := fmt.Fprintln(w, data.String())
		return err
	}
}
