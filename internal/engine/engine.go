// Package engine orchestrates packing a source tree into bounded LLM
// context: discovery, tier classification, skeletonization, budget
// allocation and serialization, plus zoom resolution back into full
// detail.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/codescope/internal/budget"
	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/serialize"
	"github.com/mvp-joe/codescope/internal/skeleton"
	"github.com/mvp-joe/codescope/internal/walker"
	"github.com/mvp-joe/codescope/internal/zoom"
)

// Skeleton modes accepted by BudgetConfig.Skeleton.
const (
	SkeletonAuto   = "auto"
	SkeletonAlways = "always"
	SkeletonNever  = "never"
)

// defaultTruncateLines applies when the configuration carries no
// line-count truncation limit.
const defaultTruncateLines = 50

// ProgressFunc reports per-file progress while packing.
type ProgressFunc func(done, total int, path string)

// Engine runs pack and zoom operations over one repository root.
type Engine struct {
	rootDir  string
	cfg      *config.Config
	skel     *skeleton.Skeletonizer
	exempt   []glob.Glob
	progress ProgressFunc
}

// New creates an engine rooted at rootDir. A nil config uses defaults.
func New(rootDir string, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	exempt := make([]glob.Glob, 0, len(cfg.Budget.SkeletonExempt))
	for _, pattern := range cfg.Budget.SkeletonExempt {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid skeleton exempt pattern %q: %w", pattern, err)
		}
		exempt = append(exempt, g)
	}

	return &Engine{
		rootDir: rootDir,
		cfg:     cfg,
		skel:    skeleton.NewSkeletonizer(),
		exempt:  exempt,
	}, nil
}

// WithProgress installs a progress callback and returns the engine.
func (e *Engine) WithProgress(fn ProgressFunc) *Engine {
	e.progress = fn
	return e
}

// PackResult is the outcome of one pack run.
type PackResult struct {
	// Output is the serialized context.
	Output string
	// Files are the entries that made it into the output, in output
	// order.
	Files []serialize.ProcessedFile
	// Report summarizes budget usage.
	Report budget.Report
}

// Pack renders the repository into bounded context per the configured
// budget, skeleton mode and output format.
func (e *Engine) Pack(ctx context.Context) (*PackResult, error) {
	entries, err := e.discover()
	if err != nil {
		return nil, err
	}

	tokens := 0
	if e.cfg.Budget.Tokens != "" {
		tokens, err = budget.Parse(e.cfg.Budget.Tokens)
		if err != nil {
			return nil, err
		}
	}

	var files []serialize.ProcessedFile
	var report budget.Report
	switch e.cfg.Budget.Skeleton {
	case SkeletonNever:
		files, report = e.packFlat(entries, tokens)
	case SkeletonAlways:
		files, report = e.packSkeletal(entries, tokens)
	default:
		files, report = e.packAdaptive(entries, tokens)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &PackResult{
		Output: e.serialize(files),
		Files:  files,
		Report: report,
	}, nil
}

// discover walks the root with the configured include and ignore
// patterns.
func (e *Engine) discover() ([]walker.Entry, error) {
	w, err := walker.New(e.rootDir, e.cfg.Paths.Include, e.cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to build walker: %w", err)
	}
	if e.cfg.Paths.MaxFileSizeKB > 0 {
		w = w.WithMaxFileSize(int64(e.cfg.Paths.MaxFileSizeKB) * 1024)
	}
	entries, err := w.Walk()
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", e.rootDir, err)
	}
	return entries, nil
}

// isExempt reports whether a path is excluded from skeletonization.
func (e *Engine) isExempt(path string) bool {
	for _, g := range e.exempt {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// skeletonFor skeletonizes an entry when its language is supported and
// the path is not exempt. The second return is false when the content
// must stay full.
func (e *Engine) skeletonFor(entry walker.Entry) (skeleton.SkeletonResult, bool) {
	if e.isExempt(entry.Path) {
		return skeleton.SkeletonResult{}, false
	}
	lang, ok := skeleton.LanguageForPath(entry.Path)
	if !ok {
		return skeleton.SkeletonResult{}, false
	}
	return e.skel.Skeletonize(entry.Content, lang), true
}

// packAdaptive implements the adaptive skeleton mode: everything is
// skeletonized up front and the allocator decides per file whether the
// budget affords full content, the skeleton, or nothing.
func (e *Engine) packAdaptive(entries []walker.Entry, tokens int) ([]serialize.ProcessedFile, budget.Report) {
	type candidate struct {
		entry    walker.Entry
		skel     skeleton.SkeletonResult
		hasSkel  bool
		fullCost int
		skelCost int
	}

	candidates := make([]candidate, 0, len(entries))
	for i, entry := range entries {
		e.reportProgress(i, len(entries), entry.Path)
		c := candidate{entry: entry}
		c.fullCost = budget.EstimateFileTokens(entry.Path, entry.Content)
		c.skelCost = c.fullCost
		if result, ok := e.skeletonFor(entry); ok {
			c.skel = result
			c.hasSkel = true
			c.skelCost = budget.EstimateFileTokens(entry.Path, result.Content)
			// Tiny bodies can skeletonize larger than the source;
			// allocation assumes skeleton <= full.
			if c.skelCost > c.fullCost {
				c.skelCost = c.fullCost
			}
		}
		candidates = append(candidates, c)
	}
	e.reportProgress(len(entries), len(entries), "")

	allocations := make([]skeleton.FileAllocation, 0, len(candidates))
	for _, c := range candidates {
		allocations = append(allocations, skeleton.NewFileAllocation(
			c.entry.Path, skeleton.ClassifyTier(c.entry.Path), c.fullCost, c.skelCost))
	}

	if tokens > 0 {
		allocations = skeleton.NewAdaptiveAllocator(tokens).Allocate(allocations)
	} else {
		for i := range allocations {
			allocations[i].Level = skeleton.LevelFull
		}
	}

	report := budget.Report{
		Budget:           tokens,
		EstimationMethod: budget.EstimationMethod,
		Strategy:         budget.Strategy(e.cfg.Budget.Strategy),
	}

	var files []serialize.ProcessedFile
	for i, alloc := range allocations {
		c := candidates[i]
		switch alloc.Level {
		case skeleton.LevelDrop:
			report.DroppedFiles = append(report.DroppedFiles, budget.DroppedFile{
				Path: c.entry.Path, Tokens: c.fullCost,
			})
		case skeleton.LevelSkeleton:
			content := c.entry.Content
			original := 0
			method := "full"
			if c.hasSkel {
				content = e.withAffordance(c.skel.Content, c.entry.Path)
				original = c.skel.OriginalTokens
				method = "truncated"
				report.TruncatedCount++
			}
			files = append(files, e.processed(c.entry, content, skeleton.LevelSkeleton, original))
			report.IncludedFiles = append(report.IncludedFiles, budget.IncludedFile{
				Path: c.entry.Path, Tokens: alloc.CurrentTokens(), Method: method,
			})
			report.Used += alloc.CurrentTokens()
		default:
			files = append(files, e.processed(c.entry, c.entry.Content, skeleton.LevelFull, 0))
			report.IncludedFiles = append(report.IncludedFiles, budget.IncludedFile{
				Path: c.entry.Path, Tokens: c.fullCost, Method: "full",
			})
			report.Used += c.fullCost
		}
	}

	report.SelectedCount = len(files)
	report.DroppedCount = len(report.DroppedFiles)
	return files, report
}

// reducedInfo records how a candidate's content was reduced before
// budgeting.
type reducedInfo struct {
	level    skeleton.CompressionLevel
	original int
}

// packSkeletal renders every eligible file as a skeleton, then applies
// the configured overflow strategy.
func (e *Engine) packSkeletal(entries []walker.Entry, tokens int) ([]serialize.ProcessedFile, budget.Report) {
	byPath := make(map[string]reducedInfo, len(entries))
	index := make(map[string]walker.Entry, len(entries))

	candidates := make([]budget.File, 0, len(entries))
	for i, entry := range entries {
		e.reportProgress(i, len(entries), entry.Path)
		content := entry.Content
		info := reducedInfo{level: skeleton.LevelFull}
		if result, ok := e.skeletonFor(entry); ok {
			content = e.withAffordance(result.Content, entry.Path)
			info = reducedInfo{level: skeleton.LevelSkeleton, original: result.OriginalTokens}
		}
		byPath[entry.Path] = info
		index[entry.Path] = entry
		candidates = append(candidates, budget.File{Path: entry.Path, Content: content})
	}
	e.reportProgress(len(entries), len(entries), "")

	return e.applyBudget(candidates, tokens, nil, byPath, index)
}

// packFlat keeps full content and relies on the overflow strategy
// alone, truncating by line count instead of skeletonizing.
func (e *Engine) packFlat(entries []walker.Entry, tokens int) ([]serialize.ProcessedFile, budget.Report) {
	byPath := make(map[string]reducedInfo, len(entries))
	index := make(map[string]walker.Entry, len(entries))

	candidates := make([]budget.File, 0, len(entries))
	for i, entry := range entries {
		e.reportProgress(i, len(entries), entry.Path)
		byPath[entry.Path] = reducedInfo{level: skeleton.LevelFull}
		index[entry.Path] = entry
		candidates = append(candidates, budget.File{Path: entry.Path, Content: entry.Content})
	}
	e.reportProgress(len(entries), len(entries), "")

	return e.applyBudget(candidates, tokens, e.lineTruncate, byPath, index)
}

// applyBudget runs the overflow strategy over pre-reduced candidates
// and converts the selection into serializable records.
func (e *Engine) applyBudget(candidates []budget.File, tokens int, truncate budget.TruncateFunc, byPath map[string]reducedInfo, index map[string]walker.Entry) ([]serialize.ProcessedFile, budget.Report) {
	var selected []budget.File
	var report budget.Report
	if tokens > 0 {
		selected, report = budget.Apply(candidates, tokens, budget.Strategy(e.cfg.Budget.Strategy), truncate)
	} else {
		selected = candidates
		report = budget.Report{
			EstimationMethod: budget.EstimationMethod,
			Strategy:         budget.Strategy(e.cfg.Budget.Strategy),
			SelectedCount:    len(candidates),
		}
		for _, f := range candidates {
			cost := budget.EstimateFileTokens(f.Path, f.Content)
			report.Used += cost
			report.IncludedFiles = append(report.IncludedFiles, budget.IncludedFile{
				Path: f.Path, Tokens: cost, Method: "full",
			})
		}
	}

	files := make([]serialize.ProcessedFile, 0, len(selected))
	for _, f := range selected {
		info := byPath[f.Path]
		entry := index[f.Path]
		// Content may have been truncated by the strategy after
		// reduction; the entry holds the original for metadata
		files = append(files, e.processed(entry, f.Content, info.level, info.original))
	}
	return files, report
}

// withAffordance appends the zoom affordance that expands a
// skeletonized file back to full content.
func (e *Engine) withAffordance(content, path string) string {
	action := zoom.ForFile(path, e.cfg.Zoom.DefaultBudget)
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}
	return content + action.AffordanceComment() + "\n"
}

// lineTruncate keeps the first configured number of lines and, unless
// the summary is disabled, marks the cut with a truncation marker and a
// zoom affordance.
func (e *Engine) lineTruncate(path, content string) (string, bool) {
	limit := e.cfg.Budget.TruncateLines
	if limit < 1 {
		limit = defaultTruncateLines
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if len(lines) <= limit {
		return content, false
	}
	kept := strings.Join(lines[:limit], "\n") + "\n"
	if !e.cfg.Budget.TruncateSummary {
		return kept, true
	}
	action := zoom.ForFile(path, e.cfg.Zoom.DefaultBudget)
	return kept + serialize.TruncationMarker(len(lines), limit, &action), true
}

// processed builds the serializable record for an entry.
func (e *Engine) processed(entry walker.Entry, content string, level skeleton.CompressionLevel, originalTokens int) serialize.ProcessedFile {
	language := ""
	if lang, ok := skeleton.LanguageForPath(entry.Path); ok {
		language = lang.String()
	}
	pf := serialize.NewProcessedFile(entry.Path, content, language)
	pf.Level = level
	pf.OriginalTokens = originalTokens
	pf.Size = entry.Size
	pf.ModTime = entry.ModTime
	return pf
}

// serialize renders the files in the configured format with the
// configured metadata mode.
func (e *Engine) serialize(files []serialize.ProcessedFile) string {
	mode, _ := serialize.ParseMetadataMode(e.cfg.Output.Metadata)
	s := serialize.GetSerializer(serialize.Format(e.cfg.Output.Format), mode)
	return s.SerializeFiles(files)
}

func (e *Engine) reportProgress(done, total int, path string) {
	if e.progress != nil {
		e.progress(done, total, path)
	}
}
