package engine

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// region is a 1-based inclusive line span within a file.
type region struct {
	start int
	end   int
}

// declPatterns returns the regexes that can open a declaration of the
// named symbol in the given language. Function and type declarations
// are both tried so that function= and class= targets share one
// locator.
func declPatterns(lang skeleton.Language, name string) []*regexp.Regexp {
	n := regexp.QuoteMeta(name)
	var exprs []string
	switch lang {
	case skeleton.LangRust:
		exprs = []string{
			`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+` + n + `\b`,
			`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait)\s+` + n + `\b`,
			`^\s*impl(?:<[^>]*>)?\s+` + n + `\b`,
		}
	case skeleton.LangPython:
		exprs = []string{
			`^\s*(?:async\s+)?def\s+` + n + `\s*\(`,
			`^\s*class\s+` + n + `\b`,
		}
	case skeleton.LangTypeScript, skeleton.LangJavaScript:
		exprs = []string{
			`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+` + n + `\s*[(<]`,
			`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+` + n + `\b`,
			`^\s*(?:export\s+)?(?:const|let|var)\s+` + n + `\s*=`,
		}
	case skeleton.LangGo:
		exprs = []string{
			`^func\s+(?:\([^)]*\)\s+)?` + n + `\s*[(\[]`,
			`^type\s+` + n + `\b`,
		}
	}

	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// locateRegion finds the source span of the named declaration. The
// span runs from the declaration line to the end of its block: brace
// balance for brace languages, indentation for Python.
func locateRegion(content string, lang skeleton.Language, name string) (region, bool) {
	lines := strings.Split(content, "\n")
	patterns := declPatterns(lang, name)
	if len(patterns) == 0 {
		return region{}, false
	}

	for i, line := range lines {
		matched := false
		for _, p := range patterns {
			if p.MatchString(line) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		if lang.UsesIndentation() {
			return pythonExtent(lines, i), true
		}
		return braceExtent(lines, i), true
	}
	return region{}, false
}

// braceExtent scans from the declaration line until the block's braces
// balance out. A declaration with no opening brace (a type alias, a
// const) spans a single line.
func braceExtent(lines []string, start int) region {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return region{start: start + 1, end: i + 1}
		}
		// A declaration line with no brace and nothing left open is a
		// one-liner (type alias, const)
		if !opened && i == start && !endsOpen(lines[i]) {
			return region{start: start + 1, end: start + 1}
		}
	}
	return region{start: start + 1, end: len(lines)}
}

// endsOpen reports whether a declaration line continues onto the next
// line (unclosed parameter list or trailing comma).
func endsOpen(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	return strings.HasSuffix(trimmed, ",") ||
		strings.HasSuffix(trimmed, "(") ||
		strings.Count(trimmed, "(") > strings.Count(trimmed, ")")
}

// pythonExtent spans from the def/class line through every following
// line indented deeper than it, with trailing blank lines trimmed.
func pythonExtent(lines []string, start int) region {
	defIndent := indentOf(lines[start])
	end := start
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentOf(lines[i]) <= defIndent {
			break
		}
		end = i
	}
	return region{start: start + 1, end: end + 1}
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// sliceRegion extracts the region's lines together with up to
// contextLines of surrounding source, bracketed by gap markers for
// what was left out.
func sliceRegion(content string, r region, contextLines int, gap func(start, end int, context string) string) string {
	lines := strings.Split(content, "\n")
	total := len(lines)

	start := r.start - contextLines
	if start < 1 {
		start = 1
	}
	if start > total {
		start = total
	}
	end := r.end + contextLines
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}

	var b strings.Builder
	if start > 1 {
		b.WriteString(gap(1, start-1, "before"))
	}
	b.WriteString(strings.Join(lines[start-1:end], "\n"))
	if end < total {
		b.WriteString(gap(end+1, total, "after"))
	}
	return b.String()
}
