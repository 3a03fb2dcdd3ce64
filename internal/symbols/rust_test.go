package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxkit/ctx/internal/lang"
)

// Test Plan for Rust extraction:
// - Functions, structs, enums, traits, consts, type aliases, modules
// - Impl-block functions tagged as methods, not functions
// - Doc comments (///, //!, /** */) attached to the following item
// - Skeleton output with impl blocks indented one level
// - Top-level use declarations returned verbatim

func parseRust(t *testing.T, source string) ([]Symbol, string, []string) {
	t.Helper()
	tree, err := lang.Rust.Parse([]byte(source))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	src := []byte(source)
	return Extract(root, src, lang.Rust),
		Skeleton(root, src, lang.Rust),
		Imports(root, src, lang.Rust)
}

func TestRustExtract_EmptySource(t *testing.T) {
	t.Parallel()

	syms, skeleton, imports := parseRust(t, "")
	assert.Empty(t, syms)
	assert.Empty(t, skeleton)
	assert.Empty(t, imports)
}

func TestRustExtract_Items(t *testing.T) {
	t.Parallel()

	source := `fn add(a: i32, b: i32) -> i32 {
    a + b
}

struct Point {
    x: i32,
    y: i32,
}

enum Direction {
    North,
    South,
}

trait Drawable {
    fn draw(&self);
}

const MAX: usize = 100;

type Pair = (i32, i32);

mod helpers {
}
`
	syms, _, _ := parseRust(t, source)
	require.Len(t, syms, 7)

	assert.Equal(t, "add", syms[0].Name)
	assert.Equal(t, KindFunction, syms[0].Kind)
	assert.Equal(t, 1, syms[0].Line)
	assert.Equal(t, "fn add(a: i32, b: i32) -> i32", syms[0].Signature)

	assert.Equal(t, "Point", syms[1].Name)
	assert.Equal(t, KindStruct, syms[1].Kind)
	assert.Equal(t, 5, syms[1].Line)

	assert.Equal(t, "Direction", syms[2].Name)
	assert.Equal(t, KindEnum, syms[2].Kind)

	assert.Equal(t, "Drawable", syms[3].Name)
	assert.Equal(t, KindTrait, syms[3].Kind)

	assert.Equal(t, "MAX", syms[4].Name)
	assert.Equal(t, KindConst, syms[4].Kind)

	assert.Equal(t, "Pair", syms[5].Name)
	assert.Equal(t, KindType, syms[5].Kind)

	assert.Equal(t, "helpers", syms[6].Name)
	assert.Equal(t, KindModule, syms[6].Kind)
}

func TestRustExtract_ImplMethods(t *testing.T) {
	t.Parallel()

	source := `struct Counter {
    value: i32,
}

impl Counter {
    fn new() -> Counter {
        Counter { value: 0 }
    }

    fn increment(&mut self) {
        self.value += 1;
    }
}
`
	syms, _, _ := parseRust(t, source)
	require.Len(t, syms, 3)

	assert.Equal(t, KindStruct, syms[0].Kind)

	assert.Equal(t, "new", syms[1].Name)
	assert.Equal(t, KindMethod, syms[1].Kind)
	assert.Equal(t, "fn new() -> Counter", syms[1].Signature)

	assert.Equal(t, "increment", syms[2].Name)
	assert.Equal(t, KindMethod, syms[2].Kind)
}

func TestRustExtract_DocComments(t *testing.T) {
	t.Parallel()

	source := `/// Adds two numbers.
fn add(a: i32, b: i32) -> i32 {
    a + b
}

/** Block style docs. */
fn sub(a: i32, b: i32) -> i32 {
    a - b
}

// Not a doc comment.
fn mul(a: i32, b: i32) -> i32 {
    a * b
}
`
	syms, _, _ := parseRust(t, source)
	require.Len(t, syms, 3)

	assert.Equal(t, "Adds two numbers.", syms[0].DocComment)
	assert.Equal(t, "Block style docs.", syms[1].DocComment)
	assert.Empty(t, syms[2].DocComment)
}

func TestRustSkeleton(t *testing.T) {
	t.Parallel()

	source := `fn main() {
    println!("hi");
}

struct Point {
    x: i32,
}

impl Point {
    fn new() -> Point {
        Point { x: 0 }
    }
}
`
	_, skeleton, _ := parseRust(t, source)

	want := "fn main() { ... }\n" +
		"struct Point { ... }\n" +
		"impl Point {\n" +
		"    fn new() -> Point { ... }\n" +
		"}\n"
	assert.Equal(t, want, skeleton)
}

func TestRustImports(t *testing.T) {
	t.Parallel()

	source := `use std::fmt;
use std::collections::HashMap;

fn main() {}
`
	_, _, imports := parseRust(t, source)
	assert.Equal(t, []string{"use std::fmt;", "use std::collections::HashMap;"}, imports)
}
