package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
)

// graphRoot is the vertex representing the repository root.
const graphRoot = "."

// moduleGraph models directory containment as a directed graph so a
// module target can be expanded into the files it contains.
type moduleGraph struct {
	g     graph.Graph[string, string]
	files map[string]bool
	dirs  map[string]bool
}

// buildModuleGraph constructs the containment graph from repo-relative
// file paths. Each directory and file is a vertex; edges point from a
// directory to its immediate children.
func buildModuleGraph(paths []string) (*moduleGraph, error) {
	m := &moduleGraph{
		g:     graph.New(graph.StringHash, graph.Directed()),
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}

	if err := m.g.AddVertex(graphRoot); err != nil {
		return nil, fmt.Errorf("failed to add root vertex: %w", err)
	}
	m.dirs[graphRoot] = true

	for _, path := range paths {
		parent := graphRoot
		segments := strings.Split(path, "/")
		for i := range segments {
			node := strings.Join(segments[:i+1], "/")
			isFile := i == len(segments)-1
			// Duplicate vertices and edges across paths are expected
			_ = m.g.AddVertex(node)
			_ = m.g.AddEdge(parent, node)
			if isFile {
				m.files[node] = true
			} else {
				m.dirs[node] = true
			}
			parent = node
		}
	}

	return m, nil
}

// resolve maps a module name to matching directory vertices. An exact
// repo-relative path wins; otherwise any directory whose base name
// matches is a candidate.
func (m *moduleGraph) resolve(module string) []string {
	norm := strings.Trim(strings.ReplaceAll(module, "\\", "/"), "/")
	if norm == "" || norm == graphRoot {
		return []string{graphRoot}
	}
	if m.dirs[norm] {
		return []string{norm}
	}

	var matches []string
	for dir := range m.dirs {
		if dir == graphRoot {
			continue
		}
		if dir[strings.LastIndex(dir, "/")+1:] == norm {
			matches = append(matches, dir)
		}
	}
	sort.Strings(matches)
	return matches
}

// filesUnder collects every file reachable from the module's directory
// vertices, sorted and deduplicated.
func (m *moduleGraph) filesUnder(module string) ([]string, error) {
	starts := m.resolve(module)
	if len(starts) == 0 {
		return nil, fmt.Errorf("unknown module: %s", module)
	}

	seen := make(map[string]bool)
	var files []string
	for _, start := range starts {
		err := graph.BFS(m.g, start, func(node string) bool {
			if m.files[node] && !seen[node] {
				seen[node] = true
				files = append(files, node)
			}
			return false
		})
		if err != nil {
			return nil, fmt.Errorf("failed to traverse module %s: %w", module, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
