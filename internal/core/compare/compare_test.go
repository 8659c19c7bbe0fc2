package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeview/internal/core/nav"
)

const sampleDiff = `diff --git a/lib/main.js b/lib/main.js
index 1111111..2222222 100644
--- a/lib/main.js
+++ b/lib/main.js
@@ -1,8 +1,8 @@
 function main() {
-  var a = 1;
+  let a = 1;
+  let b = 2;
   run(a);
   done();
   more();
-  removed();
   tail();
 }
diff --git a/manifest.json b/manifest.json
index 3333333..4444444 100644
--- a/manifest.json
+++ b/manifest.json
@@ -2,3 +2,3 @@
   "name": "addon",
-  "version": "1.0"
+  "version": "1.1"
 }
diff --git a/new.js b/new.js
new file mode 100644
index 0000000..5555555
--- /dev/null
+++ b/new.js
@@ -0,0 +1,2 @@
+one();
+two();
diff --git a/gone.js b/gone.js
deleted file mode 100644
index 6666666..0000000
--- a/gone.js
+++ /dev/null
@@ -1 +0,0 @@
-bye();
`

func parseSample(t *testing.T) *Comparison {
	t.Helper()
	c, err := Parse("v1.0", "v1.1", sampleDiff)
	require.NoError(t, err)
	return c
}

func TestParse_Paths(t *testing.T) {
	c := parseSample(t)
	assert.Equal(t, []string{"lib/main.js", "manifest.json", "new.js", "gone.js"}, c.Paths())
	assert.Equal(t, "v1.0", c.Base)
	assert.Equal(t, "v1.1", c.Ref)
}

func TestParse_Blocks(t *testing.T) {
	c := parseSample(t)

	f, ok := c.File("lib/main.js")
	require.True(t, ok)

	assert.Equal(t, []string{"D1", "D2"}, f.Anchors())
	assert.Equal(t, Block{Anchor: "D1", NewStart: 2, Additions: 2, Deletions: 1}, f.Blocks[0])
	// Pure deletion: starts at the new-side line that follows it.
	assert.Equal(t, Block{Anchor: "D2", NewStart: 7, Additions: 0, Deletions: 1}, f.Blocks[1])

	adds, dels := f.Stats()
	assert.Equal(t, 2, adds)
	assert.Equal(t, 2, dels)
}

func TestParse_Lines(t *testing.T) {
	c := parseSample(t)
	f, _ := c.File("lib/main.js")
	require.Len(t, f.Hunks, 1)

	lines := f.Hunks[0]
	assert.Equal(t, Line{Kind: LineContext, Text: "function main() {", OldLine: 1, NewLine: 1}, lines[0])
	assert.Equal(t, Line{Kind: LineRemoved, Text: "  var a = 1;", OldLine: 2, Anchor: "D1"}, lines[1])
	assert.Equal(t, Line{Kind: LineAdded, Text: "  let a = 1;", NewLine: 2}, lines[2])
	assert.Equal(t, Line{Kind: LineAdded, Text: "  let b = 2;", NewLine: 3}, lines[3])
	assert.Equal(t, Line{Kind: LineContext, Text: "  run(a);", OldLine: 3, NewLine: 4}, lines[4])
}

func TestParse_NewAndDeletedFiles(t *testing.T) {
	c := parseSample(t)

	added, ok := c.File("new.js")
	require.True(t, ok)
	assert.True(t, added.New)
	assert.Equal(t, []Block{{Anchor: "D1", NewStart: 1, Additions: 2}}, added.Blocks)

	gone, ok := c.File("gone.js")
	require.True(t, ok)
	assert.True(t, gone.Deleted)
	assert.Equal(t, []string{"D1"}, gone.Anchors())
}

func TestParse_Binary(t *testing.T) {
	diff := `diff --git a/icon.png b/icon.png
index 1111111..2222222 100644
Binary files a/icon.png and b/icon.png differ
`
	c, err := Parse("a", "b", diff)
	require.NoError(t, err)

	f, ok := c.File("icon.png")
	require.True(t, ok)
	assert.True(t, f.Binary)
	assert.Empty(t, f.Anchors())
}

func TestParse_Empty(t *testing.T) {
	c, err := Parse("a", "b", "")
	require.NoError(t, err)
	assert.Empty(t, c.Paths())
	assert.Equal(t, &nav.CompareInfo{Diff: []string{}}, c.Info("anything.js"))
}

func TestComparison_Info(t *testing.T) {
	c := parseSample(t)

	assert.Equal(t, &nav.CompareInfo{Diff: []string{"D1", "D2"}}, c.Info("lib/main.js"))
	assert.Equal(t, &nav.CompareInfo{Diff: []string{"D1"}}, c.Info("manifest.json"))

	unchanged := c.Info("README.md")
	require.NotNil(t, unchanged)
	assert.Empty(t, unchanged.Diff)

	var none *Comparison
	assert.Nil(t, none.Info("lib/main.js"))
	_, ok := none.File("lib/main.js")
	assert.False(t, ok)
}

func TestFileDiff_Block(t *testing.T) {
	c := parseSample(t)
	f, _ := c.File("manifest.json")

	b, ok := f.Block("D1")
	require.True(t, ok)
	assert.Equal(t, 3, b.NewStart)

	_, ok = f.Block("D9")
	assert.False(t, ok)
}

func TestIsAnchor(t *testing.T) {
	assert.True(t, IsAnchor("D1"))
	assert.True(t, IsAnchor("D12"))
	assert.False(t, IsAnchor("D"))
	assert.False(t, IsAnchor("D0"))
	assert.False(t, IsAnchor("L1"))
	assert.False(t, IsAnchor("Dx"))
}
