// Package walker discovers source files under a project root using
// glob patterns with ignore rules.
package walker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultMaxFileSize caps how large a file may be before the walker
// skips it (1 MiB).
const DefaultMaxFileSize = 1 << 20

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Entry is one discovered file with its content loaded.
type Entry struct {
	// Path is repo-relative with forward slashes.
	Path    string
	Content string
	Size    int64
	ModTime int64
}

// Walker discovers files matching include patterns while honoring
// ignore rules.
type Walker struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
	maxFileSize     int64
}

// New creates a walker. Empty include patterns match everything.
func New(rootDir string, includePatterns, ignorePatterns []string) (*Walker, error) {
	w := &Walker{
		rootDir:     rootDir,
		maxFileSize: DefaultMaxFileSize,
	}

	for _, pattern := range includePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		w.includePatterns = append(w.includePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		w.ignorePatterns = append(w.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return w, nil
}

// WithMaxFileSize overrides the file size cap. Zero disables it.
func (w *Walker) WithMaxFileSize(n int64) *Walker {
	w.maxFileSize = n
	return w
}

// Walk traverses the root and returns matching entries with content
// loaded, sorted in traversal order.
func (w *Walker) Walk() ([]Entry, error) {
	var entries []Entry

	err := filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(w.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if w.shouldIgnore(relPath) && relPath != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldIgnore(relPath) {
			return nil
		}
		if len(w.includePatterns) > 0 && !matchesAnyPattern(relPath, w.includePatterns) {
			return nil
		}
		if w.maxFileSize > 0 && info.Size() > w.maxFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			Path:    relPath,
			Content: string(content),
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
		return nil
	})

	return entries, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (w *Walker) shouldIgnore(relPath string) bool {
	// The tool's own state directory is never packed.
	if strings.HasPrefix(relPath, ".codescope/") || relPath == ".codescope" {
		return true
	}
	if strings.HasPrefix(relPath, ".git/") || relPath == ".git" {
		return true
	}

	if matchesAnyPattern(relPath, w.ignorePatterns) {
		return true
	}

	// A directory named node_modules should match the pattern
	// "node_modules/**" too.
	return matchesAnyPattern(relPath+"/**", w.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level files should match "**/*.ext" patterns the way users
	// expect, so retry with the **/ prefix stripped.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}
