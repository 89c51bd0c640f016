package engine

// Test Plan:
// 1. Function zoom resolves through the symbol index to the body
// 2. Class zoom works for Python classes
// 3. Test files are excluded unless IncludeTests is set
// 4. File zoom with a line range emits gap markers
// 5. Module zoom expands a directory into its files
// 6. Signature depth renders a skeleton of the region
// 7. Unresolvable targets return an error

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/zoom"
)

func TestZoomFunction(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"greet.go": "package main\n\nfunc Greet(name string) string {\n\treturn \"hello \" + name\n}\n",
		"main.go":  "package main\n\nfunc main() {\n\tprintln(Greet(\"world\"))\n}\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("function=Greet")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.NoError(t, err)

	assert.Equal(t, []string{"greet.go"}, result.Matches)
	assert.Contains(t, result.Output, `return "hello " + name`)
}

func TestZoomClassPython(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"models.py": "class User:\n    def __init__(self, name):\n        self.name = name\n\n    def hello(self):\n        return self.name\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("class=User")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.NoError(t, err)

	assert.Equal(t, []string{"models.py"}, result.Matches)
	assert.Contains(t, result.Output, "self.name = name")
}

func TestZoomExcludesTestsByDefault(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/lib.rs":       "pub fn compute() -> u32 {\n    42\n}\n",
		"tests/compute.rs": "fn compute() -> u32 {\n    0\n}\n",
		"tests/helpers.rs": "fn setup() {\n}\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("fn=compute")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib.rs"}, result.Matches)

	result, err = eng.Zoom(context.Background(), zoom.Config{Target: target, IncludeTests: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib.rs", "tests/compute.rs"}, result.Matches)
}

func TestZoomFileRange(t *testing.T) {
	t.Parallel()

	var content string
	for i := 1; i <= 20; i++ {
		content += "line\n"
	}
	root := writeTree(t, map[string]string{"notes.txt": content})

	cfg := config.Default()
	cfg.Paths.Include = []string{"**/*.txt"}

	eng, err := New(root, cfg)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("file=notes.txt:10-12")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target, ContextLines: 2})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "lines 1-7")
	assert.Contains(t, result.Output, "lines 15-21")
	assert.Contains(t, result.Output, "omitted (before)")
	assert.Contains(t, result.Output, "omitted (after)")
}

func TestZoomFileWhole(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"main.go": "package main\n\nfunc main() {}\n"})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("file=main.go")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "func main() {}")
	assert.NotContains(t, result.Output, "omitted")
}

func TestZoomModule(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"pkg/auth/handler.go": "package auth\n\nfunc Handle() {}\n",
		"pkg/auth/token.go":   "package auth\n\nfunc Token() {}\n",
		"main.go":             "package main\n\nfunc main() {}\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("module=auth")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/auth/handler.go", "pkg/auth/token.go"}, result.Matches)
	assert.NotContains(t, result.Matches, "main.go")
}

func TestZoomSignatureDepth(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"calc.go": "package main\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("function=Add")
	require.NoError(t, err)

	result, err := eng.Zoom(context.Background(), zoom.Config{Target: target, Depth: zoom.DepthSignature})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "func Add(a, b int) int")
	assert.NotContains(t, result.Output, "return a + b")
}

func TestZoomNoMatch(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.go": "package main\n\nfunc main() {}\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("function=Missing")
	require.NoError(t, err)

	_, err = eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no match for zoom target")
}

func TestZoomMissingFile(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.go": "package main\n",
	})

	eng, err := New(root, nil)
	require.NoError(t, err)

	target, err := zoom.ParseTarget("file=gone.go")
	require.NoError(t, err)

	_, err = eng.Zoom(context.Background(), zoom.Config{Target: target})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
