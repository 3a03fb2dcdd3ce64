// Package walker enumerates candidate source files under ignore-rule
// filtering. The analysis packages never walk the filesystem themselves.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are directories never worth descending into, gitignore or not.
var skipDirs = map[string]struct{}{
	".git":             {},
	".hg":              {},
	".svn":             {},
	".bzr":             {},
	"node_modules":     {},
	"vendor":           {},
	"bower_components": {},
	"target":           {},
	"build":            {},
	"dist":             {},
	"out":              {},
	"_build":           {},
	"__pycache__":      {},
	".pytest_cache":    {},
	".mypy_cache":      {},
	".ruff_cache":      {},
	"venv":             {},
	".venv":            {},
	".idea":            {},
	".vscode":          {},
	"coverage":         {},
	".nyc_output":      {},
	"tmp":              {},
	"temp":             {},
}

// skipFilePatterns are glob patterns for files excluded from scans even
// when no .gitignore mentions them.
var skipFilePatterns = compilePatterns([]string{
	"*.pyc",
	"*.pyo",
	"*.swp",
	"*.swo",
	"*.log",
	"*.egg-info",
	"*~",
})

func compilePatterns(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if g, err := glob.Compile(p); err == nil {
			globs = append(globs, g)
		}
	}
	return globs
}

// Options controls a walk.
type Options struct {
	// MaxDepth limits directory depth below the root; 0 means unlimited.
	// A file directly under the root has depth 1.
	MaxDepth int
	// IncludeDirs reports directories to the callback as well as files.
	IncludeDirs bool
}

// Walk visits files under root in lexical order, honoring the root's
// .gitignore, the built-in skip lists, and hidden-entry filtering.
// Unreadable entries are skipped, never fatal. The callback receives
// paths joined with root.
func Walk(root string, opts Options, fn func(path string, d fs.DirEntry) error) error {
	gi := loadGitignore(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		name := d.Name()
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depthOf(rel) > opts.MaxDepth {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			if opts.IncludeDirs {
				return fn(path, d)
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if opts.MaxDepth > 0 && depthOf(rel) > opts.MaxDepth {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		for _, g := range skipFilePatterns {
			if g.Match(name) {
				return nil
			}
		}

		return fn(path, d)
	})
}

// Files returns every candidate file under root, in walk order.
func Files(root string, opts Options) ([]string, error) {
	var files []string
	err := Walk(root, opts, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func depthOf(rel string) int {
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// binaryExtensions lists extensions whose files text scans skip.
var binaryExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "ico": {},
	"svg": {}, "pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
	"ppt": {}, "pptx": {}, "zip": {}, "tar": {}, "gz": {}, "bz2": {},
	"7z": {}, "rar": {}, "exe": {}, "dll": {}, "so": {}, "dylib": {},
	"o": {}, "a": {}, "lib": {}, "bin": {}, "dat": {}, "db": {},
	"sqlite": {}, "wasm": {}, "class": {}, "pyc": {}, "pyo": {},
}

// IsBinary reports whether the path's extension marks a binary file.
func IsBinary(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := binaryExtensions[ext]
	return ok
}
