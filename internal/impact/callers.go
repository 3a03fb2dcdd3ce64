package impact

import (
	"os"
	"strconv"
	"strings"
)

// FunctionRef identifies a function believed modified, by file and name.
type FunctionRef struct {
	File string
	Name string
}

// String formats the reference as "file:name".
func (r FunctionRef) String() string {
	return r.File + ":" + r.Name
}

// CallerInfo lists the probable call sites of one modified function.
type CallerInfo struct {
	FunctionModified string   `json:"function_modified"`
	CalledFrom       []string `json:"called_from"`
}

// definitionMarkers are substrings that mark a line as a declaration
// rather than a call site.
var definitionMarkers = []string{"fn ", "def ", "function ", "func "}

// ResolveCallers scans files line by line for textual call shapes of
// each referenced function: name(, name ( and .name(. Lines that also
// look like definitions are excluded. One CallerInfo per reference, in
// input order; call sites follow file order. Unreadable files are
// skipped.
//
// Matching is deliberately substring-based: it over-matches unrelated
// identically-named symbols and text inside comments or strings, and it
// misses calls through aliases. Syntax-aware matching was considered
// and left out to keep the scan cheap and language-agnostic.
func ResolveCallers(refs []FunctionRef, files []string) []CallerInfo {
	callers := make([]CallerInfo, 0, len(refs))

	for _, ref := range refs {
		patterns := []string{
			ref.Name + "(",
			ref.Name + " (",
			"." + ref.Name + "(",
		}

		calledFrom := []string{}
		for _, path := range files {
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			for idx, line := range strings.Split(string(content), "\n") {
				if !containsAny(line, patterns) {
					continue
				}
				if containsAny(line, definitionMarkers) {
					continue
				}
				calledFrom = append(calledFrom, path+":"+strconv.Itoa(idx+1))
			}
		}

		callers = append(callers, CallerInfo{
			FunctionModified: ref.String(),
			CalledFrom:       calledFrom,
		})
	}

	return callers
}

func containsAny(line string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
