package skeleton

import "strings"

// FileTier ranks files by how much context value they carry per token.
// Lower values are more valuable and are upgraded first when budget
// remains.
type FileTier int

const (
	// TierCore is domain source under src/, lib/, pkg/, internal/ and
	// similar directories.
	TierCore FileTier = iota
	// TierConfig is manifests and configuration, cheap to include and
	// high signal.
	TierConfig
	// TierTests covers test, example and bench files.
	TierTests
	// TierOther is everything that matched no other tier.
	TierOther
)

func (t FileTier) String() string {
	switch t {
	case TierCore:
		return "core"
	case TierConfig:
		return "config"
	case TierTests:
		return "tests"
	default:
		return "other"
	}
}

// manifest filenames treated as config regardless of location
var configNames = map[string]bool{
	"cargo.toml":       true,
	"package.json":     true,
	"pyproject.toml":   true,
	"setup.py":         true,
	"go.mod":           true,
	"pom.xml":          true,
	"build.gradle":     true,
	"composer.json":    true,
	"gemfile":          true,
	"requirements.txt": true,
	"pipfile":          true,
}

var coreDirs = []string{"src/", "lib/", "pkg/", "internal/", "app/", "core/"}

// ClassifyTier assigns a repo-relative path to a tier. Classification
// is case-insensitive and checks config, then tests, then core, so a
// yaml file under tests/ still counts as config.
func ClassifyTier(path string) FileTier {
	lower := strings.ToLower(path)

	if isConfigFile(lower) {
		return TierConfig
	}
	if isTestFile(lower) {
		return TierTests
	}
	if isCoreFile(lower) {
		return TierCore
	}
	return TierOther
}

func isConfigFile(path string) bool {
	if configNames[baseName(path)] {
		return true
	}

	return strings.Contains(path, "/config/") ||
		strings.Contains(path, "/configs/") ||
		strings.HasSuffix(path, ".toml") ||
		strings.HasSuffix(path, ".yaml") ||
		strings.HasSuffix(path, ".yml") ||
		(strings.HasSuffix(path, ".json") && !strings.Contains(path, "/test"))
}

func isTestFile(path string) bool {
	if strings.HasPrefix(path, "tests/") ||
		strings.HasPrefix(path, "test/") ||
		strings.Contains(path, "/tests/") ||
		strings.Contains(path, "/test/") ||
		strings.HasPrefix(path, "examples/") ||
		strings.Contains(path, "/examples/") ||
		strings.HasPrefix(path, "benches/") ||
		strings.Contains(path, "/benches/") {
		return true
	}

	name := baseName(path)
	return strings.HasPrefix(name, "test_") ||
		strings.HasSuffix(name, "_test.py") ||
		strings.HasSuffix(name, "_test.rs") ||
		strings.HasSuffix(name, "_test.go") ||
		strings.HasSuffix(name, ".test.js") ||
		strings.HasSuffix(name, ".test.ts") ||
		strings.HasSuffix(name, ".spec.js") ||
		strings.HasSuffix(name, ".spec.ts")
}

func isCoreFile(path string) bool {
	for _, dir := range coreDirs {
		if strings.HasPrefix(path, dir) || strings.Contains(path, "/"+dir) {
			return true
		}
	}
	return false
}

func baseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
