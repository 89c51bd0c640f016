// Package zoom implements the interactive zoom protocol that lets an
// LLM request deeper context for specific code elements seen in packed
// output.
package zoom

import (
	"fmt"
	"strconv"
	"strings"
)

// TargetKind discriminates what a zoom target points at.
type TargetKind string

const (
	// KindFunction zooms into a single function.
	KindFunction TargetKind = "function"
	// KindClass zooms into a class or struct.
	KindClass TargetKind = "class"
	// KindModule zooms into a module or directory.
	KindModule TargetKind = "module"
	// KindFile zooms into a file, optionally a line range.
	KindFile TargetKind = "file"
)

// Target identifies what to zoom into. For KindFile, StartLine and
// EndLine narrow the range; zero means unset.
type Target struct {
	Kind TargetKind `json:"kind"`
	// Name holds the symbol or module name for non-file kinds.
	Name string `json:"name,omitempty"`
	// Path holds the file path for KindFile.
	Path      string `json:"path,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// InvalidTargetError reports an unparsable zoom target string.
type InvalidTargetError struct {
	Target string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid zoom target: %q (expected type=value)", e.Target)
}

// ParseTarget reads a target from "type=value" form. Recognized types
// are function/fn, class/struct, module/mod and file. File values may
// carry a line range after the last colon: "file=src/main.go:10-50".
// Unparsable line numbers are left unset rather than failing.
func ParseTarget(s string) (Target, error) {
	kind, value, found := strings.Cut(s, "=")
	if !found {
		return Target{}, &InvalidTargetError{Target: s}
	}

	switch kind {
	case "function", "fn":
		return Target{Kind: KindFunction, Name: value}, nil
	case "class", "struct":
		return Target{Kind: KindClass, Name: value}, nil
	case "module", "mod":
		return Target{Kind: KindModule, Name: value}, nil
	case "file":
		colon := strings.LastIndex(value, ":")
		if colon < 0 {
			return Target{Kind: KindFile, Path: value}, nil
		}
		t := Target{Kind: KindFile, Path: value[:colon]}
		rng := value[colon+1:]
		if dash := strings.Index(rng, "-"); dash >= 0 {
			t.StartLine, _ = strconv.Atoi(rng[:dash])
			t.EndLine, _ = strconv.Atoi(rng[dash+1:])
		} else {
			t.StartLine, _ = strconv.Atoi(rng)
		}
		return t, nil
	default:
		return Target{}, &InvalidTargetError{Target: s}
	}
}

// Command renders the CLI invocation that performs this zoom. A budget
// of zero omits the flag.
func (t Target) Command(budget int) string {
	var target string
	switch t.Kind {
	case KindFunction:
		target = "function=" + t.Name
	case KindClass:
		target = "class=" + t.Name
	case KindModule:
		target = "module=" + t.Name
	case KindFile:
		switch {
		case t.StartLine > 0 && t.EndLine > 0:
			target = fmt.Sprintf("file=%s:%d-%d", t.Path, t.StartLine, t.EndLine)
		case t.StartLine > 0:
			target = fmt.Sprintf("file=%s:%d", t.Path, t.StartLine)
		default:
			target = "file=" + t.Path
		}
	}

	if budget > 0 {
		return fmt.Sprintf("codescope --zoom %s --budget %d", target, budget)
	}
	return "codescope --zoom " + target
}

// String renders the target in display form, "function:name" or
// "file:path[start-end]".
func (t Target) String() string {
	switch t.Kind {
	case KindFunction:
		return "function:" + t.Name
	case KindClass:
		return "class:" + t.Name
	case KindModule:
		return "module:" + t.Name
	case KindFile:
		switch {
		case t.StartLine > 0 && t.EndLine > 0:
			return fmt.Sprintf("file:%s[%d-%d]", t.Path, t.StartLine, t.EndLine)
		case t.StartLine > 0:
			return fmt.Sprintf("file:%s[%d]", t.Path, t.StartLine)
		default:
			return "file:" + t.Path
		}
	}
	return string(t.Kind) + ":" + t.Name
}
