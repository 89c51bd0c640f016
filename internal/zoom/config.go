package zoom

import "strings"

// Depth controls how much of a zoom target is expanded.
type Depth string

const (
	// DepthSignature shows signatures and declarations only.
	DepthSignature Depth = "signature"
	// DepthImplementation shows implementation without docstrings.
	DepthImplementation Depth = "implementation"
	// DepthFull shows full content including docs and tests.
	DepthFull Depth = "full"
)

// ParseDepth reads a depth from its name or short alias, case
// insensitively. It reports false for unknown values.
func ParseDepth(s string) (Depth, bool) {
	switch strings.ToLower(s) {
	case "signature", "sig":
		return DepthSignature, true
	case "implementation", "impl":
		return DepthImplementation, true
	case "full":
		return DepthFull, true
	default:
		return "", false
	}
}

// Config holds the parameters of one zoom operation.
type Config struct {
	Target Target `json:"target"`
	// Budget is the token budget for the zoomed content, 0 for none.
	Budget int   `json:"budget,omitempty"`
	Depth  Depth `json:"depth"`
	// IncludeTests pulls in tests related to the target.
	IncludeTests bool `json:"include_tests"`
	// ContextLines is how many lines of surrounding context to show.
	ContextLines int `json:"context_lines"`
}

// DefaultConfig returns the default zoom parameters.
func DefaultConfig() Config {
	return Config{
		Target:       Target{Kind: KindFunction, Name: "main"},
		Budget:       1000,
		Depth:        DepthImplementation,
		IncludeTests: false,
		ContextLines: 5,
	}
}
