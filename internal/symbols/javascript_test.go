package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/lang"
)

// Test Plan for JavaScript/TypeScript extraction:
// - Function and class declarations, class methods, exported forms
// - const arrow functions promoted to functions, other consts variables
// - JSDoc blocks attached to the following declaration
// - TypeScript interfaces and type aliases
// - Skeleton output with class bodies indented
// - Top-level import statements returned verbatim

func parseJS(t *testing.T, l lang.Language, source string) ([]Symbol, string, []string) {
	t.Helper()
	tree, err := l.Parse([]byte(source))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	src := []byte(source)
	return Extract(root, src, l), Skeleton(root, src, l), Imports(root, src, l)
}

func TestJSExtract_EmptySource(t *testing.T) {
	t.Parallel()

	syms, skeleton, imports := parseJS(t, lang.JavaScript, "")
	assert.Empty(t, syms)
	assert.Empty(t, skeleton)
	assert.Empty(t, imports)
}

func TestJSExtract_Declarations(t *testing.T) {
	t.Parallel()

	source := `function go() {
  return 1;
}

class App {
  run() {
    return go();
  }
}

const handler = () => 42;

const limit = 10;
`
	syms, _, _ := parseJS(t, lang.JavaScript, source)
	require.Len(t, syms, 5)

	assert.Equal(t, "go", syms[0].Name)
	assert.Equal(t, KindFunction, syms[0].Kind)
	assert.Equal(t, 1, syms[0].Line)
	assert.Equal(t, "function go()", syms[0].Signature)

	assert.Equal(t, "App", syms[1].Name)
	assert.Equal(t, KindClass, syms[1].Kind)

	assert.Equal(t, "run", syms[2].Name)
	assert.Equal(t, KindMethod, syms[2].Kind)
	assert.Equal(t, 6, syms[2].Line)

	assert.Equal(t, "handler", syms[3].Name)
	assert.Equal(t, KindFunction, syms[3].Kind)

	assert.Equal(t, "limit", syms[4].Name)
	assert.Equal(t, KindVariable, syms[4].Kind)
}

func TestJSExtract_ExportedDeclarations(t *testing.T) {
	t.Parallel()

	source := `export function visible() {
  return true;
}

export const helper = () => null;
`
	syms, _, _ := parseJS(t, lang.JavaScript, source)
	require.Len(t, syms, 2)

	assert.Equal(t, "visible", syms[0].Name)
	assert.Equal(t, KindFunction, syms[0].Kind)
	assert.Equal(t, "helper", syms[1].Name)
	assert.Equal(t, KindFunction, syms[1].Kind)
}

func TestJSExtract_JSDoc(t *testing.T) {
	t.Parallel()

	source := `/** Fetches a user by id. */
function fetchUser(id) {
  return null;
}

// plain comment
function plain() {
}
`
	syms, _, _ := parseJS(t, lang.JavaScript, source)
	require.Len(t, syms, 2)

	assert.Equal(t, "Fetches a user by id.", syms[0].DocComment)
	assert.Empty(t, syms[1].DocComment)
}

func TestTSExtract_InterfacesAndTypes(t *testing.T) {
	t.Parallel()

	source := `interface Shape {
  area(): number;
}

type Point = { x: number; y: number };

function describe(s: Shape): string {
  return "shape";
}
`
	syms, _, _ := parseJS(t, lang.TypeScript, source)
	require.Len(t, syms, 3)

	assert.Equal(t, "Shape", syms[0].Name)
	assert.Equal(t, KindInterface, syms[0].Kind)

	assert.Equal(t, "Point", syms[1].Name)
	assert.Equal(t, KindType, syms[1].Kind)

	assert.Equal(t, "describe", syms[2].Name)
	assert.Equal(t, KindFunction, syms[2].Kind)
	assert.Equal(t, "function describe(s: Shape): string", syms[2].Signature)
}

func TestJSSkeleton(t *testing.T) {
	t.Parallel()

	source := `function go() {
  return 1;
}

class App {
  run() {
    return go();
  }
}
`
	_, skeleton, _ := parseJS(t, lang.JavaScript, source)

	want := "function go() { ... }\n" +
		"class App {\n" +
		"    run() { ... }\n" +
		"}\n"
	assert.Equal(t, want, skeleton)
}

func TestJSImports(t *testing.T) {
	t.Parallel()

	source := `import fs from 'fs';
import { join } from './paths';

function main() {}
`
	_, _, imports := parseJS(t, lang.JavaScript, source)
	assert.Equal(t, []string{"import fs from 'fs';", "import { join } from './paths';"}, imports)
}
