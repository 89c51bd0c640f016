package zoom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for zoom targets:
// - Parse every kind with its aliases
// - File targets with and without line ranges, splitting at the last colon
// - Unparsable line numbers are left unset, not errors
// - Missing "=" and unknown kinds return InvalidTargetError
// - Command and String round-trip the formats embedded in output
// - Depth parsing with aliases, case insensitive

func TestParseTargetKinds(t *testing.T) {
	t.Parallel()

	cases := map[string]Target{
		"function=apply_budget": {Kind: KindFunction, Name: "apply_budget"},
		"fn=main":               {Kind: KindFunction, Name: "main"},
		"class=Engine":          {Kind: KindClass, Name: "Engine"},
		"struct=Config":         {Kind: KindClass, Name: "Config"},
		"module=core":           {Kind: KindModule, Name: "core"},
		"mod=utils":             {Kind: KindModule, Name: "utils"},
		"file=src/main.go":      {Kind: KindFile, Path: "src/main.go"},
	}
	for input, want := range cases {
		got, err := ParseTarget(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseTargetFileRange(t *testing.T) {
	t.Parallel()

	got, err := ParseTarget("file=src/main.go:10-50")
	require.NoError(t, err)
	assert.Equal(t, Target{Kind: KindFile, Path: "src/main.go", StartLine: 10, EndLine: 50}, got)

	got, err = ParseTarget("file=src/main.go:42")
	require.NoError(t, err)
	assert.Equal(t, Target{Kind: KindFile, Path: "src/main.go", StartLine: 42}, got)
}

func TestParseTargetFileLastColonWins(t *testing.T) {
	t.Parallel()

	// Windows-style path: only the last colon starts a range.
	got, err := ParseTarget("file=c:/repo/main.go:5-9")
	require.NoError(t, err)
	assert.Equal(t, "c:/repo/main.go", got.Path)
	assert.Equal(t, 5, got.StartLine)
	assert.Equal(t, 9, got.EndLine)
}

func TestParseTargetFileBadRangeLeftUnset(t *testing.T) {
	t.Parallel()

	got, err := ParseTarget("file=src/main.go:abc")
	require.NoError(t, err)
	assert.Equal(t, "src/main.go", got.Path)
	assert.Zero(t, got.StartLine)
	assert.Zero(t, got.EndLine)
}

func TestParseTargetInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"function", "widget=foo", ""} {
		_, err := ParseTarget(input)
		require.Error(t, err, input)

		var invalid *InvalidTargetError
		require.True(t, errors.As(err, &invalid), input)
		assert.Equal(t, input, invalid.Target)
	}
}

func TestTargetCommand(t *testing.T) {
	t.Parallel()

	fn := Target{Kind: KindFunction, Name: "apply_budget"}
	assert.Equal(t, "codescope --zoom function=apply_budget --budget 1000", fn.Command(1000))
	assert.Equal(t, "codescope --zoom function=apply_budget", fn.Command(0))

	file := Target{Kind: KindFile, Path: "src/main.go", StartLine: 10, EndLine: 50}
	assert.Equal(t, "codescope --zoom file=src/main.go:10-50 --budget 500", file.Command(500))

	partial := Target{Kind: KindFile, Path: "a.go", StartLine: 3}
	assert.Equal(t, "codescope --zoom file=a.go:3", partial.Command(0))
}

func TestTargetString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "function:main", Target{Kind: KindFunction, Name: "main"}.String())
	assert.Equal(t, "class:Engine", Target{Kind: KindClass, Name: "Engine"}.String())
	assert.Equal(t, "module:core", Target{Kind: KindModule, Name: "core"}.String())
	assert.Equal(t, "file:a.go", Target{Kind: KindFile, Path: "a.go"}.String())
	assert.Equal(t, "file:a.go[3]", Target{Kind: KindFile, Path: "a.go", StartLine: 3}.String())
	assert.Equal(t, "file:a.go[3-9]", Target{Kind: KindFile, Path: "a.go", StartLine: 3, EndLine: 9}.String())
}

func TestParseDepth(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Depth{
		"signature":      DepthSignature,
		"sig":            DepthSignature,
		"implementation": DepthImplementation,
		"impl":           DepthImplementation,
		"full":           DepthFull,
		"FULL":           DepthFull,
		"Sig":            DepthSignature,
	} {
		got, ok := ParseDepth(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseDepth("everything")
	assert.False(t, ok)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, Target{Kind: KindFunction, Name: "main"}, cfg.Target)
	assert.Equal(t, 1000, cfg.Budget)
	assert.Equal(t, DepthImplementation, cfg.Depth)
	assert.False(t, cfg.IncludeTests)
	assert.Equal(t, 5, cfg.ContextLines)
}

func TestActionAffordance(t *testing.T) {
	t.Parallel()

	action := ForFunction("apply_budget", 1000)
	assert.Equal(t,
		"/* ZOOM_AFFORDANCE: codescope --zoom function=apply_budget --budget 1000 */",
		action.AffordanceComment())
	assert.Contains(t, action.Description, "apply_budget")

	xml := ForClass("Engine", 500).XML()
	assert.Contains(t, xml, `type="expand"`)
	assert.Contains(t, xml, `target="class:Engine"`)
	assert.Contains(t, xml, `budget="500"`)

	file := ForFile("src/main.go", 200)
	assert.Equal(t, "codescope --zoom file=src/main.go --budget 200", file.Command)
}
