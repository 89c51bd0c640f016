package skeleton

import (
	"strings"
)

// DefaultFallbackLines is the number of leading lines kept when the
// skeletonizer degrades instead of parsing.
const DefaultFallbackLines = 50

// Skeletonizer extracts code signatures while stripping implementation
// bodies. It is pure and deterministic: identical inputs always produce
// byte-identical output, and Skeletonize never fails. Unsupported
// input degrades to a line-count fallback.
type Skeletonizer struct {
	// PreserveDocstrings keeps doc comments and docstrings in the skeleton.
	PreserveDocstrings bool
	// FallbackLines is how many leading lines the fallback keeps.
	FallbackLines int
}

// NewSkeletonizer creates a Skeletonizer with default settings.
func NewSkeletonizer() *Skeletonizer {
	return &Skeletonizer{
		PreserveDocstrings: true,
		FallbackLines:      DefaultFallbackLines,
	}
}

// WithDocstrings sets docstring preservation and returns the receiver
// for chaining.
func (s *Skeletonizer) WithDocstrings(preserve bool) *Skeletonizer {
	s.PreserveDocstrings = preserve
	return s
}

// outcome is the tagged result of a per-language pass: either a parsed
// skeleton or a fallback with a reason. Keeping the reason explicit
// keeps the degradation path visible to tests.
type outcome struct {
	content        string
	symbols        []string
	fallbackReason string
}

// Skeletonize reduces content to a signature-only rendering for lang.
func (s *Skeletonizer) Skeletonize(content string, lang Language) SkeletonResult {
	if content == "" {
		return SkeletonResult{}
	}

	originalTokens := EstimateTokens(content)

	var out outcome
	switch lang {
	case LangRust:
		out = s.skeletonizeRust(content)
	case LangPython:
		out = s.skeletonizePython(content)
	case LangTypeScript, LangJavaScript:
		out = s.skeletonizeJS(content)
	case LangGo:
		out = s.skeletonizeGo(content)
	default:
		out = s.fallback(content, "unsupported language")
	}

	result := newSkeletonResult(out.content, originalTokens, EstimateTokens(out.content), out.symbols)
	result.FallbackReason = out.fallbackReason
	return result
}

// fallback returns the first FallbackLines lines of the input verbatim
// with an empty symbol list.
func (s *Skeletonizer) fallback(content, reason string) outcome {
	n := s.FallbackLines
	if n <= 0 {
		n = DefaultFallbackLines
	}
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return outcome{content: strings.Join(lines, "\n"), fallbackReason: reason}
}

// braceDelta counts the net brace depth change contributed by a line.
func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// extractBraceSignature collects a function signature that may span
// multiple lines, stopping at the line holding the opening brace. The
// brace and everything after it is replaced with a placeholder body.
func extractBraceSignature(lines []string, start int) string {
	var sig strings.Builder
	for i := start; i < len(lines); i++ {
		line := lines[i]
		sig.WriteString(line)
		if strings.Contains(line, "{") {
			text := sig.String()
			if pos := strings.LastIndex(text, "{"); pos >= 0 {
				text = text[:pos]
			}
			return text + "{ /* ... */ }"
		}
		sig.WriteByte('\n')
	}
	return sig.String()
}

func (s *Skeletonizer) skeletonizeRust(content string) outcome {
	lines := strings.Split(content, "\n")
	var result []string
	var symbols []string
	braceDepth := 0
	inStructBody := false
	var pendingAttrs []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		delta := braceDelta(line)

		if rustDocRe.MatchString(trimmed) && s.PreserveDocstrings {
			if braceDepth == 0 || inStructBody {
				result = append(result, line)
			}
			continue
		}

		if rustAttrRe.MatchString(trimmed) {
			if braceDepth == 0 {
				pendingAttrs = append(pendingAttrs, line)
			}
			continue
		}

		if braceDepth == 0 {
			if rustUseRe.MatchString(trimmed) {
				result = append(result, line)
				continue
			}

			if m := rustModRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				result = append(result, line)
				symbols = append(symbols, m[1])
				continue
			}

			if m := rustConstRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				result = append(result, line)
				symbols = append(symbols, m[1])
				continue
			}

			if m := rustTypeRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				result = append(result, line)
				symbols = append(symbols, m[1])
				continue
			}

			// Type-like declarations keep their whole body: fields and
			// variants are part of the signature.
			if m := rustStructRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				symbols = append(symbols, m[1])
				inStructBody = true
				result = append(result, line)
				braceDepth += delta
				continue
			}
			if m := rustEnumRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				symbols = append(symbols, m[1])
				inStructBody = true
				result = append(result, line)
				braceDepth += delta
				continue
			}
			if m := rustTraitRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				symbols = append(symbols, m[1])
				inStructBody = true
				result = append(result, line)
				braceDepth += delta
				continue
			}

			if rustImplRe.MatchString(trimmed) {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				result = append(result, line)
				braceDepth += delta
				continue
			}

			if m := rustFnRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, pendingAttrs...)
				pendingAttrs = nil
				symbols = append(symbols, m[1])
				result = append(result, extractBraceSignature(lines, i))
				braceDepth += delta
				continue
			}

			pendingAttrs = nil
		}

		if braceDepth > 0 {
			if inStructBody {
				result = append(result, line)
			} else if m := rustFnRe.FindStringSubmatch(trimmed); m != nil {
				// Method inside an impl or trait block.
				symbols = append(symbols, m[1])
				result = append(result, extractBraceSignature(lines, i))
			}
		}

		braceDepth += delta

		if braceDepth == 0 && inStructBody {
			inStructBody = false
		}

		// Mismatched delimiters; signature extraction is no longer
		// trustworthy past this point.
		if braceDepth < 0 {
			return s.fallback(content, "negative brace depth")
		}
	}

	return outcome{content: strings.Join(result, "\n"), symbols: symbols}
}

func (s *Skeletonizer) skeletonizePython(content string) outcome {
	lines := strings.Split(content, "\n")
	var result []string
	var symbols []string
	var classIndentStack []int
	inDocstring := false
	var pendingDocstring []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if inDocstring {
			if s.PreserveDocstrings {
				pendingDocstring = append(pendingDocstring, line)
			}
			if pythonDocstringRe.MatchString(trimmed) && len(trimmed) > 3 {
				inDocstring = false
			} else if strings.HasSuffix(trimmed, `"""`) || strings.HasSuffix(trimmed, "'''") {
				inDocstring = false
			}
			if !inDocstring && s.PreserveDocstrings {
				result = append(result, pendingDocstring...)
				pendingDocstring = nil
			}
			continue
		}

		if pythonDocstringRe.MatchString(trimmed) {
			inDocstring = true
			pendingDocstring = pendingDocstring[:0]
			pendingDocstring = append(pendingDocstring, line)

			quote := `"""`
			if strings.HasPrefix(trimmed, "'''") {
				quote = "'''"
			}
			// A bare six-quote line opens a docstring rather than
			// closing itself; a one-line docstring needs text between
			// the quote pairs.
			if len(trimmed) > 6 && strings.Contains(trimmed[3:], quote) {
				// Single-line docstring.
				inDocstring = false
				if s.PreserveDocstrings {
					result = append(result, line)
				}
			}
			continue
		}

		if trimmed != "" {
			for len(classIndentStack) > 0 && indent <= classIndentStack[len(classIndentStack)-1] {
				classIndentStack = classIndentStack[:len(classIndentStack)-1]
			}
		}

		if pythonImportRe.MatchString(trimmed) {
			result = append(result, line)
			continue
		}

		if m := pythonClassRe.FindStringSubmatch(trimmed); m != nil {
			classIndentStack = append(classIndentStack, indent)
			result = append(result, line)
			symbols = append(symbols, m[1])
			continue
		}

		if m := pythonDefRe.FindStringSubmatch(trimmed); m != nil {
			defIndent := indent
			isMethod := len(classIndentStack) > 0 && defIndent > classIndentStack[len(classIndentStack)-1]

			if len(classIndentStack) == 0 || isMethod || defIndent == 0 {
				result = append(result, line)
				result = append(result, strings.Repeat(" ", defIndent)+"    ...")
				symbols = append(symbols, m[1])

				// Skip the body: every following line with strictly
				// greater indentation, preserving nested docstrings.
				i++
				for i < len(lines) {
					next := lines[i]
					nextTrimmed := strings.TrimSpace(next)
					nextIndent := len(next) - len(strings.TrimLeft(next, " \t"))

					if nextTrimmed == "" {
						i++
						continue
					}
					if nextIndent <= defIndent {
						break
					}

					if pythonDocstringRe.MatchString(nextTrimmed) && s.PreserveDocstrings {
						result = append(result, next)
						quote := `"""`
						if strings.HasPrefix(nextTrimmed, "'''") {
							quote = "'''"
						}
						if !(len(nextTrimmed) > 6 && strings.Contains(nextTrimmed[3:], quote)) {
							i++
							for i < len(lines) {
								dsLine := lines[i]
								result = append(result, dsLine)
								if strings.HasSuffix(strings.TrimSpace(dsLine), quote) {
									break
								}
								i++
							}
						}
					}

					i++
				}
				// Re-examine the line that ended the body.
				i--
				continue
			}
		}
	}

	return outcome{content: strings.Join(result, "\n"), symbols: symbols}
}

func (s *Skeletonizer) skeletonizeJS(content string) outcome {
	lines := strings.Split(content, "\n")
	var result []string
	var symbols []string
	braceDepth := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		delta := braceDelta(line)

		if braceDepth == 0 {
			if jsImportRe.MatchString(trimmed) {
				result = append(result, line)
				continue
			}

			if m := jsInterfaceRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, line)
				symbols = append(symbols, m[1])
				braceDepth += delta
				continue
			}
			if m := jsTypeRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, line)
				symbols = append(symbols, m[1])
				braceDepth += delta
				continue
			}

			if m := jsClassRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, line)
				symbols = append(symbols, m[1])
				braceDepth += delta
				continue
			}

			if m := jsFunctionRe.FindStringSubmatch(trimmed); m != nil {
				symbols = append(symbols, m[1])
				result = append(result, strings.TrimRight(trimmed, "{")+" { /* ... */ }")
				braceDepth += delta
				continue
			}

			if m := jsArrowFnRe.FindStringSubmatch(trimmed); m != nil {
				symbols = append(symbols, m[1])
				result = append(result, line)
				braceDepth += delta
				continue
			}
		} else if m := jsFunctionRe.FindStringSubmatch(trimmed); m != nil {
			// Record class method names without emitting bodies.
			symbols = append(symbols, m[1])
		}

		braceDepth += delta

		if braceDepth < 0 {
			return s.fallback(content, "negative brace depth")
		}
	}

	return outcome{content: strings.Join(result, "\n"), symbols: symbols}
}

func (s *Skeletonizer) skeletonizeGo(content string) outcome {
	lines := strings.Split(content, "\n")
	var result []string
	var symbols []string
	braceDepth := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		delta := braceDelta(line)

		if braceDepth == 0 {
			if goPackageRe.MatchString(trimmed) {
				result = append(result, line)
				continue
			}

			if goImportRe.MatchString(trimmed) {
				result = append(result, line)
				if strings.Contains(trimmed, "(") && !strings.Contains(trimmed, ")") {
					for i++; i < len(lines); i++ {
						result = append(result, lines[i])
						if strings.Contains(lines[i], ")") {
							break
						}
					}
				}
				continue
			}

			if goConstRe.MatchString(trimmed) {
				result = append(result, line)
				if strings.Contains(trimmed, "(") && !strings.Contains(trimmed, ")") {
					for i++; i < len(lines); i++ {
						result = append(result, lines[i])
						if strings.Contains(lines[i], ")") {
							break
						}
					}
				}
				continue
			}

			if m := goTypeRe.FindStringSubmatch(trimmed); m != nil {
				result = append(result, line)
				symbols = append(symbols, m[1])
				braceDepth += delta
				continue
			}

			if m := goFuncRe.FindStringSubmatch(trimmed); m != nil {
				symbols = append(symbols, m[1])
				result = append(result, strings.TrimRight(trimmed, "{")+" { /* ... */ }")
				braceDepth += delta
				continue
			}
		}

		braceDepth += delta

		if braceDepth < 0 {
			return s.fallback(content, "negative brace depth")
		}
	}

	return outcome{content: strings.Join(result, "\n"), symbols: symbols}
}
