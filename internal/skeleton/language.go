package skeleton

import (
	"regexp"
	"strings"
)

// Language identifies a source language supported by the Skeletonizer.
type Language int

const (
	LangUnknown Language = iota
	LangRust
	LangPython
	LangTypeScript
	LangJavaScript
	LangGo
)

// LanguageFromExtension detects a language from a file extension
// (without the leading dot). Detection is case-insensitive.
func LanguageFromExtension(ext string) (Language, bool) {
	switch strings.ToLower(ext) {
	case "rs":
		return LangRust, true
	case "py":
		return LangPython, true
	case "ts", "tsx":
		return LangTypeScript, true
	case "js", "jsx", "mjs", "cjs":
		return LangJavaScript, true
	case "go":
		return LangGo, true
	default:
		return LangUnknown, false
	}
}

// LanguageForPath detects a language from a file path.
func LanguageForPath(path string) (Language, bool) {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return LangUnknown, false
	}
	return LanguageFromExtension(path[idx+1:])
}

// UsesBraces reports whether the language delimits blocks with braces.
func (l Language) UsesBraces() bool {
	switch l {
	case LangRust, LangTypeScript, LangJavaScript, LangGo:
		return true
	default:
		return false
	}
}

// UsesIndentation reports whether the language delimits blocks by indentation.
func (l Language) UsesIndentation() bool {
	return l == LangPython
}

func (l Language) String() string {
	switch l {
	case LangRust:
		return "rust"
	case LangPython:
		return "python"
	case LangTypeScript:
		return "typescript"
	case LangJavaScript:
		return "javascript"
	case LangGo:
		return "go"
	default:
		return "unknown"
	}
}

// Per-language declaration patterns. These are process-wide, read-only
// singletons: compiled once at init and never mutated afterwards.
var (
	// Rust
	rustFnRe        = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)`)
	rustStructRe    = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?struct\s+(\w+)`)
	rustEnumRe      = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?enum\s+(\w+)`)
	rustTraitRe     = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?trait\s+(\w+)`)
	rustImplRe      = regexp.MustCompile(`^\s*impl\s*(?:<[^>]*>)?\s*(?:(\w+)\s+for\s+)?(\w+)`)
	rustTypeRe      = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?type\s+(\w+)`)
	rustConstRe     = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const|static)\s+(\w+)`)
	rustModRe       = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?mod\s+(\w+)`)
	rustUseRe       = regexp.MustCompile(`^\s*use\s+`)
	rustAttrRe      = regexp.MustCompile(`^\s*#\[`)
	rustDocRe       = regexp.MustCompile(`^\s*(///|//!)`)

	// Python
	pythonDefRe       = regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)`)
	pythonClassRe     = regexp.MustCompile(`^\s*class\s+(\w+)`)
	pythonImportRe    = regexp.MustCompile(`^\s*(?:import\s+|from\s+\S+\s+import)`)
	pythonDocstringRe = regexp.MustCompile(`^\s*("""|''')`)

	// TypeScript / JavaScript
	jsFunctionRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)`)
	jsClassRe     = regexp.MustCompile(`^\s*(?:export\s+)?class\s+(\w+)`)
	jsArrowFnRe   = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[^=])\s*=>`)
	jsImportRe    = regexp.MustCompile(`^\s*import\s+`)
	jsInterfaceRe = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+(\w+)`)
	jsTypeRe      = regexp.MustCompile(`^\s*(?:export\s+)?type\s+(\w+)`)

	// Go
	goFuncRe    = regexp.MustCompile(`^\s*func\s+(?:\([^)]+\)\s+)?(\w+)`)
	goTypeRe    = regexp.MustCompile(`^\s*type\s+(\w+)\s+(?:struct|interface)`)
	goImportRe  = regexp.MustCompile(`^\s*import\s+`)
	goPackageRe = regexp.MustCompile(`^\s*package\s+\w+`)
	goConstRe   = regexp.MustCompile(`^\s*(?:const|var)\s+`)
)
