package budget

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for budget:
// - Parse plain numbers and k/K/m/M suffixes, reject garbage
// - Token estimation heuristic and per-file overhead
// - Drop strategy skips files that do not fit
// - Truncate strategy retries oversized files in skeleton form
// - Hybrid strategy pre-truncates files above 10% of budget
// - Deterministic ordering: tier asc, priority desc, path asc
// - Report arithmetic: percentage, remaining, counts
// - Report printing includes headline numbers

func TestParsePlainNumber(t *testing.T) {
	t.Parallel()

	n, err := Parse("100000")
	require.NoError(t, err)
	assert.Equal(t, 100000, n)

	n, err = Parse("50")
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}

func TestParseSuffixes(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"100k": 100_000,
		"100K": 100_000,
		"50k":  50_000,
		"2m":   2_000_000,
		"2M":   2_000_000,
		"1M":   1_000_000,
	}
	for input, want := range cases {
		n, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, n, input)
	}
}

func TestParseWhitespace(t *testing.T) {
	t.Parallel()

	n, err := Parse("  100k  ")
	require.NoError(t, err)
	assert.Equal(t, 100_000, n)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "abc", "100x", "k"} {
		_, err := Parse(input)
		assert.Error(t, err, input)
	}
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, EstimateTokens(strings.Repeat("x", 400)))
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
}

func TestEstimateFileTokensOverhead(t *testing.T) {
	t.Parallel()

	tokens := EstimateFileTokens("test.py", strings.Repeat("x", 400))
	assert.Greater(t, tokens, 100)
	assert.Less(t, tokens, 150)

	// Overhead applies even to empty files.
	assert.Greater(t, EstimateFileTokens("empty.py", ""), 0)
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "100", FormatNumber(100))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "12,345", FormatNumber(12345))
	assert.Equal(t, "1,000,000", FormatNumber(1000000))
}

func TestDropStrategySkipsOversized(t *testing.T) {
	t.Parallel()

	files := []File{
		{Path: "small.py", Content: strings.Repeat("x", 100)},
		{Path: "large.py", Content: strings.Repeat("y", 10000)},
	}
	selected, report := Apply(files, 500, StrategyDrop, nil)

	require.Len(t, selected, 1)
	assert.Equal(t, "small.py", selected[0].Path)
	assert.Equal(t, 1, report.DroppedCount)
	assert.Equal(t, StrategyDrop, report.Strategy)
	assert.LessOrEqual(t, report.Used, report.Budget)
}

func TestTruncateStrategyRetriesSkeleton(t *testing.T) {
	t.Parallel()

	var body strings.Builder
	body.WriteString("def compute():\n")
	for i := 0; i < 200; i++ {
		body.WriteString("    total = total + 1\n")
	}
	files := []File{{Path: "src/compute.py", Content: body.String()}}

	// Full file is ~1000 tokens; only the skeleton fits.
	selected, report := Apply(files, 100, StrategyTruncate, nil)

	require.Len(t, selected, 1)
	assert.Equal(t, 1, report.TruncatedCount)
	assert.Equal(t, "truncated", report.IncludedFiles[0].Method)
	assert.Contains(t, selected[0].Content, "def compute():")
	assert.NotContains(t, selected[0].Content, "total = total + 1")
}

func TestHybridPreTruncatesLargeFiles(t *testing.T) {
	t.Parallel()

	var body strings.Builder
	body.WriteString("def helper():\n")
	for i := 0; i < 300; i++ {
		body.WriteString("    value = value * 2\n")
	}
	files := []File{
		{Path: "src/big.py", Content: body.String()},
		{Path: "src/tiny.py", Content: "x = 1"},
	}

	// big.py alone exceeds 10% of the budget so hybrid truncates it
	// even though the full file would have fit.
	selected, report := Apply(files, 10000, StrategyHybrid, nil)

	require.Len(t, selected, 2)
	assert.Equal(t, 1, report.TruncatedCount)
	for _, f := range report.IncludedFiles {
		if f.Path == "src/big.py" {
			assert.Equal(t, "truncated", f.Method)
		}
	}
}

func TestHybridLeavesSmallFilesAlone(t *testing.T) {
	t.Parallel()

	files := []File{
		{Path: "a.py", Content: "x = 1"},
		{Path: "b.py", Content: "y = 2"},
		{Path: "c.py", Content: "z = 3"},
	}
	selected, report := Apply(files, 1000, StrategyHybrid, nil)

	assert.Len(t, selected, 3)
	assert.Equal(t, 0, report.TruncatedCount)
}

func TestTieredOrderingCoreFirst(t *testing.T) {
	t.Parallel()

	files := []File{
		{Path: "docs/guide.md", Content: strings.Repeat("a", 40)},
		{Path: "tests/test_app.py", Content: strings.Repeat("b", 40)},
		{Path: "config.toml", Content: strings.Repeat("c", 40)},
		{Path: "src/lib.rs", Content: strings.Repeat("d", 40)},
	}
	selected, _ := Apply(files, 1_000_000, StrategyDrop, nil)

	require.Len(t, selected, 4)
	assert.Equal(t, "src/lib.rs", selected[0].Path)
	assert.Equal(t, "config.toml", selected[1].Path)
	assert.Equal(t, "tests/test_app.py", selected[2].Path)
	assert.Equal(t, "docs/guide.md", selected[3].Path)
}

func TestPriorityThenPathOrdering(t *testing.T) {
	t.Parallel()

	files := []File{
		{Path: "src/c.py", Content: "c", Priority: 10},
		{Path: "src/a.py", Content: "a", Priority: 10},
		{Path: "src/b.py", Content: "b", Priority: 50},
	}
	selected, _ := Apply(files, 1000, StrategyDrop, nil)

	require.Len(t, selected, 3)
	assert.Equal(t, "src/b.py", selected[0].Path)
	assert.Equal(t, "src/a.py", selected[1].Path)
	assert.Equal(t, "src/c.py", selected[2].Path)
}

func TestApplyEmptyInput(t *testing.T) {
	t.Parallel()

	selected, report := Apply(nil, 1000, StrategyDrop, nil)

	assert.Empty(t, selected)
	assert.Equal(t, 0, report.SelectedCount)
	assert.Equal(t, 0, report.DroppedCount)
	assert.Equal(t, 0, report.Used)
}

func TestReportArithmetic(t *testing.T) {
	t.Parallel()

	r := Report{Budget: 1000, Used: 500}
	assert.InDelta(t, 50.0, r.UsedPercentage(), 0.1)
	assert.Equal(t, 500, r.Remaining())

	over := Report{Budget: 100, Used: 150}
	assert.Equal(t, 0, over.Remaining())

	zero := Report{}
	assert.Equal(t, 0.0, zero.UsedPercentage())
	assert.Equal(t, 0, zero.Remaining())
}

func TestReportPrint(t *testing.T) {
	t.Parallel()

	r := Report{
		Budget:           1000,
		Used:             800,
		SelectedCount:    2,
		DroppedCount:     1,
		EstimationMethod: EstimationMethod,
		Strategy:         StrategyHybrid,
		IncludedFiles: []IncludedFile{
			{Path: "src/a.py", Priority: 100, Tokens: 500, Method: "full"},
			{Path: "src/b.py", Priority: 80, Tokens: 300, Method: "truncated"},
		},
		DroppedFiles:   []DroppedFile{{Path: "docs/c.md", Priority: 10, Tokens: 400}},
		TruncatedCount: 1,
	}

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "TOKEN BUDGET REPORT")
	assert.Contains(t, out, "1,000 tokens")
	assert.Contains(t, out, "Files included: 2 (1 full, 1 truncated)")
	assert.Contains(t, out, "docs/c.md")
}
