package engine

// Implementation Plan:
// 1. Resolve the target into concrete file regions
//    - function/class: symbol index lookup + region locator
//    - module: containment graph BFS
//    - file: direct path match, optional line range
// 2. Render each region at the requested depth
// 3. Apply the zoom budget (drop strategy) and serialize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/codescope/internal/budget"
	"github.com/mvp-joe/codescope/internal/serialize"
	"github.com/mvp-joe/codescope/internal/skeleton"
	"github.com/mvp-joe/codescope/internal/walker"
	"github.com/mvp-joe/codescope/internal/zoom"
)

// ZoomResult is the outcome of one zoom operation.
type ZoomResult struct {
	Output string
	Files  []serialize.ProcessedFile
	// Matches lists the paths the target resolved to.
	Matches []string
	Report  budget.Report
}

// Zoom expands a target back into detailed content, scoped by the zoom
// budget.
func (e *Engine) Zoom(ctx context.Context, zc zoom.Config) (*ZoomResult, error) {
	if zc.Depth == "" {
		zc.Depth, _ = zoom.ParseDepth(e.cfg.Zoom.DefaultDepth)
	}
	if zc.Budget == 0 {
		zc.Budget = e.cfg.Zoom.DefaultBudget
	}
	if zc.ContextLines == 0 {
		zc.ContextLines = e.cfg.Zoom.ContextLines
	}

	entries, err := e.discover()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []serialize.ProcessedFile
	switch zc.Target.Kind {
	case zoom.KindFile:
		files, err = e.zoomFile(entries, zc)
	case zoom.KindModule:
		files, err = e.zoomModule(entries, zc)
	default:
		files, err = e.zoomSymbol(entries, zc)
	}
	if err != nil {
		return nil, err
	}

	files, report := e.zoomBudget(files, zc.Budget)

	matches := make([]string, 0, len(files))
	for _, f := range files {
		matches = append(matches, f.Path)
	}

	return &ZoomResult{
		Output:  e.serialize(files),
		Files:   files,
		Matches: matches,
		Report:  report,
	}, nil
}

// zoomFile renders a single file, optionally narrowed to a line range
// with context and gap markers.
func (e *Engine) zoomFile(entries []walker.Entry, zc zoom.Config) ([]serialize.ProcessedFile, error) {
	for _, entry := range entries {
		if entry.Path != zc.Target.Path {
			continue
		}
		if zc.Target.StartLine == 0 {
			return []serialize.ProcessedFile{e.processed(entry, entry.Content, skeleton.LevelFull, 0)}, nil
		}
		r := region{start: zc.Target.StartLine, end: zc.Target.EndLine}
		if r.end == 0 {
			r.end = r.start
		}
		content := sliceRegion(entry.Content, r, zc.ContextLines, serialize.GapMarker)
		return []serialize.ProcessedFile{e.processed(entry, content, skeleton.LevelFull, 0)}, nil
	}
	return nil, fmt.Errorf("zoom target file not found: %s", zc.Target.Path)
}

// zoomModule expands a module name into every file it contains, at
// full detail.
func (e *Engine) zoomModule(entries []walker.Entry, zc zoom.Config) ([]serialize.ProcessedFile, error) {
	paths := make([]string, 0, len(entries))
	index := make(map[string]walker.Entry, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
		index[entry.Path] = entry
	}

	mg, err := buildModuleGraph(paths)
	if err != nil {
		return nil, err
	}
	matched, err := mg.filesUnder(zc.Target.Name)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("zoom target module is empty: %s", zc.Target.Name)
	}

	var files []serialize.ProcessedFile
	for _, path := range matched {
		entry := index[path]
		if !zc.IncludeTests && skeleton.ClassifyTier(path) == skeleton.TierTests {
			continue
		}
		files = append(files, e.processed(entry, entry.Content, skeleton.LevelFull, 0))
	}
	return files, nil
}

// zoomSymbol resolves a function or class name through the symbol
// index and renders each declaration at the requested depth.
func (e *Engine) zoomSymbol(entries []walker.Entry, zc zoom.Config) ([]serialize.ProcessedFile, error) {
	symbolsByPath := make(map[string][]string)
	index := make(map[string]walker.Entry, len(entries))
	for _, entry := range entries {
		index[entry.Path] = entry
		if result, ok := e.skeletonFor(entry); ok && len(result.PreservedSymbols) > 0 {
			symbolsByPath[entry.Path] = result.PreservedSymbols
		}
	}

	si, err := newSymbolIndex(symbolsByPath)
	if err != nil {
		return nil, err
	}
	defer si.Close()

	paths, err := si.lookup(zc.Target.Name)
	if err != nil {
		return nil, err
	}

	var files []serialize.ProcessedFile
	for _, path := range paths {
		if !zc.IncludeTests && skeleton.ClassifyTier(path) == skeleton.TierTests {
			continue
		}
		entry := index[path]
		lang, _ := skeleton.LanguageForPath(path)
		r, ok := locateRegion(entry.Content, lang, zc.Target.Name)
		if !ok {
			continue
		}
		content := e.renderRegion(entry, lang, r, zc)
		files = append(files, e.processed(entry, content, skeleton.LevelFull, 0))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no match for zoom target: %s", zc.Target.String())
	}
	return files, nil
}

// renderRegion renders a located span at the requested depth.
func (e *Engine) renderRegion(entry walker.Entry, lang skeleton.Language, r region, zc zoom.Config) string {
	switch zc.Depth {
	case zoom.DepthFull:
		return entry.Content
	case zoom.DepthSignature:
		lines := strings.Split(entry.Content, "\n")
		span := strings.Join(lines[r.start-1:r.end], "\n")
		result := e.skel.Skeletonize(span, lang)
		return result.Content
	default:
		return sliceRegion(entry.Content, r, zc.ContextLines, serialize.GapMarker)
	}
}

// zoomBudget applies the zoom token budget by dropping whole files
// once it is exhausted.
func (e *Engine) zoomBudget(files []serialize.ProcessedFile, tokens int) ([]serialize.ProcessedFile, budget.Report) {
	report := budget.Report{
		Budget:           tokens,
		EstimationMethod: budget.EstimationMethod,
		Strategy:         budget.StrategyDrop,
	}
	if tokens <= 0 {
		report.SelectedCount = len(files)
		return files, report
	}

	sort.SliceStable(files, func(i, j int) bool {
		tierI := skeleton.ClassifyTier(files[i].Path)
		tierJ := skeleton.ClassifyTier(files[j].Path)
		if tierI != tierJ {
			return tierI < tierJ
		}
		return files[i].Path < files[j].Path
	})

	var kept []serialize.ProcessedFile
	for _, f := range files {
		cost := budget.EstimateFileTokens(f.Path, f.Content)
		if report.Used+cost > tokens {
			report.DroppedFiles = append(report.DroppedFiles, budget.DroppedFile{Path: f.Path, Tokens: cost})
			continue
		}
		report.Used += cost
		report.IncludedFiles = append(report.IncludedFiles, budget.IncludedFile{Path: f.Path, Tokens: cost, Method: "full"})
		kept = append(kept, f)
	}
	report.SelectedCount = len(kept)
	report.DroppedCount = len(report.DroppedFiles)
	return kept, report
}
