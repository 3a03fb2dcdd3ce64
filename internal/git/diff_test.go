package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for diff parsing:
// - Added lines recorded under their new-file numbers
// - Deleted lines recorded at the new-file position of the deletion
// - Insertion/deletion counts tracked per file, not whole-diff
// - a/ and b/ name prefixes stripped, multiple files kept in order
// - Malformed input surfaces an error

const sampleDiff = `diff --git a/src/app.py b/src/app.py
index 83db48f..bf269f4 100644
--- a/src/app.py
+++ b/src/app.py
@@ -1,5 +1,6 @@
 def main():
-    old()
+    new()
+    extra()
     tail()
 
 def other():
diff --git a/src/util.py b/src/util.py
index 83db48f..bf269f4 100644
--- a/src/util.py
+++ b/src/util.py
@@ -10,3 +10,2 @@
 def keep():
-    gone()
     pass
`

func TestParseChangedLines(t *testing.T) {
	t.Parallel()

	changes, err := ParseChangedLines([]byte(sampleDiff))
	require.NoError(t, err)
	require.Len(t, changes, 2)

	app := changes[0]
	assert.Equal(t, "src/app.py", app.Path)
	assert.Equal(t, 2, app.Insertions)
	assert.Equal(t, 1, app.Deletions)
	assert.Equal(t, map[int]bool{2: true, 3: true}, app.Lines)

	util := changes[1]
	assert.Equal(t, "src/util.py", util.Path)
	assert.Equal(t, 0, util.Insertions)
	assert.Equal(t, 1, util.Deletions)
	assert.Equal(t, map[int]bool{11: true}, util.Lines)
}

func TestParseChangedLines_Empty(t *testing.T) {
	t.Parallel()

	changes, err := ParseChangedLines(nil)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
