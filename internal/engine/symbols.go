package engine

// Implementation Plan:
// 1. In-memory bleve index over preserved symbol names
// 2. buildSymbolMapping - keyword analyzer for exact name lookup
// 3. Batch indexing of (name, path) documents
// 4. lookup - term query on the name field, paths deduplicated
// 5. Thread-safe for concurrent lookups

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// symbolIndex resolves a symbol name to the files that declare it.
type symbolIndex struct {
	index bleve.Index
	mu    sync.RWMutex // Protects index during rebuilds
}

// newSymbolIndex creates an in-memory index over the given symbols,
// keyed by file path.
func newSymbolIndex(symbolsByPath map[string][]string) (*symbolIndex, error) {
	index, err := bleve.NewMemOnly(buildSymbolMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create symbol index: %w", err)
	}

	si := &symbolIndex{index: index}
	if err := si.indexSymbols(symbolsByPath); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index symbols: %w", err)
	}
	return si, nil
}

// buildSymbolMapping creates the index mapping for symbol documents.
func buildSymbolMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	// Name field - keyword analyzer for exact matching
	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "keyword"
	nameMapping.Store = true
	nameMapping.Index = true

	// Path field (stored for retrieval) - keyword, not searched
	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "keyword"
	pathMapping.Store = true
	pathMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// indexSymbols adds all symbol documents to the index in one batch.
func (si *symbolIndex) indexSymbols(symbolsByPath map[string][]string) error {
	batch := si.index.NewBatch()
	for path, symbols := range symbolsByPath {
		for i, name := range symbols {
			id := fmt.Sprintf("%s#%d", path, i)
			doc := map[string]interface{}{
				"name": name,
				"path": path,
			}
			if err := batch.Index(id, doc); err != nil {
				return fmt.Errorf("failed to add symbol %s to batch: %w", name, err)
			}
		}
	}
	if batch.Size() > 0 {
		if err := si.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute batch: %w", err)
		}
	}
	return nil
}

// lookup returns the paths of files declaring the named symbol, sorted
// and deduplicated.
func (si *symbolIndex) lookup(name string) ([]string, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	query := bleve.NewTermQuery(name)
	query.SetField("name")

	request := bleve.NewSearchRequestOptions(query, 100, 0, false)
	request.Fields = []string{"path"}

	result, err := si.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("symbol lookup failed: %w", err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, hit := range result.Hits {
		path, ok := hit.Fields["path"].(string)
		if !ok || seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// Close releases the index.
func (si *symbolIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Close()
}
