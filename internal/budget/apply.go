package budget

import (
	"sort"

	"github.com/mvp-joe/codescope/internal/skeleton"
)

// hybridThreshold: files larger than this fraction of the budget get
// pre-truncated under the hybrid strategy.
const hybridThreshold = 0.10

// Strategy selects how files that exceed the budget are handled.
type Strategy string

const (
	// StrategyDrop excludes files that do not fit.
	StrategyDrop Strategy = "drop"
	// StrategyTruncate retries oversized files in skeleton form.
	StrategyTruncate Strategy = "truncate"
	// StrategyHybrid pre-truncates files consuming over 10% of the
	// budget, then applies the truncate logic to the rest.
	StrategyHybrid Strategy = "hybrid"
)

// File is one candidate for inclusion in packed output.
type File struct {
	Path     string
	Content  string
	Priority int
}

// IncludedFile records a file that made it into the selection.
type IncludedFile struct {
	Path     string
	Priority int
	Tokens   int
	Method   string // "full" or "truncated"
}

// DroppedFile records a file excluded by the budget.
type DroppedFile struct {
	Path     string
	Priority int
	Tokens   int // original token cost
}

// Report summarizes a budget application.
type Report struct {
	Budget           int
	Used             int
	SelectedCount    int
	DroppedCount     int
	DroppedFiles     []DroppedFile
	EstimationMethod string
	Strategy         Strategy
	IncludedFiles    []IncludedFile
	TruncatedCount   int
}

// UsedPercentage is the share of the budget consumed, 0 for a zero
// budget.
func (r *Report) UsedPercentage() float64 {
	if r.Budget > 0 {
		return float64(r.Used) / float64(r.Budget) * 100.0
	}
	return 0.0
}

// Remaining is the unspent budget, clamped at zero.
func (r *Report) Remaining() int {
	if r.Used >= r.Budget {
		return 0
	}
	return r.Budget - r.Used
}

// TruncateFunc reduces content to a compact structural form. It
// returns the reduced content and whether reduction actually happened.
type TruncateFunc func(path, content string) (string, bool)

// SkeletonTruncate truncates via the signature skeletonizer. Files in
// unsupported languages are left untouched.
func SkeletonTruncate(path, content string) (string, bool) {
	lang, ok := skeleton.LanguageForPath(path)
	if !ok {
		return content, false
	}
	result := skeleton.NewSkeletonizer().Skeletonize(content, lang)
	if result.FallbackReason != "" || result.Content == content {
		return content, false
	}
	return result.Content, true
}

type fileData struct {
	path           string
	content        string
	priority       int
	tokens         int
	originalTokens int
	method         string
}

// Apply selects files within budget. Files are considered in tier
// order (core, config, tests, other), then by priority descending,
// then by path for determinism. Oversized files are dropped or
// truncated per the strategy. The returned slice preserves the
// selection order.
func Apply(files []File, budget int, strategy Strategy, truncate TruncateFunc) ([]File, Report) {
	if truncate == nil {
		truncate = SkeletonTruncate
	}

	data := make([]fileData, 0, len(files))
	for _, f := range files {
		data = append(data, fileData{
			path:           f.Path,
			content:        f.Content,
			priority:       f.Priority,
			tokens:         EstimateFileTokens(f.Path, f.Content),
			originalTokens: EstimateFileTokens(f.Path, f.Content),
			method:         "full",
		})
	}

	sort.SliceStable(data, func(i, j int) bool {
		tierI := skeleton.ClassifyTier(data[i].path)
		tierJ := skeleton.ClassifyTier(data[j].path)
		if tierI != tierJ {
			return tierI < tierJ
		}
		if data[i].priority != data[j].priority {
			return data[i].priority > data[j].priority
		}
		return data[i].path < data[j].path
	})

	if strategy == StrategyHybrid {
		threshold := int(float64(budget) * hybridThreshold)
		for i := range data {
			if data[i].tokens <= threshold {
				continue
			}
			truncated, ok := truncate(data[i].path, data[i].content)
			if ok {
				data[i].content = truncated
				data[i].tokens = EstimateFileTokens(data[i].path, truncated)
				data[i].method = "truncated"
			}
		}
	}

	var selected []File
	report := Report{
		Budget:           budget,
		EstimationMethod: EstimationMethod,
		Strategy:         strategy,
	}
	total := 0

	for _, fd := range data {
		if total+fd.tokens <= budget {
			if fd.method == "truncated" {
				report.TruncatedCount++
			}
			report.IncludedFiles = append(report.IncludedFiles, IncludedFile{
				Path: fd.path, Priority: fd.priority, Tokens: fd.tokens, Method: fd.method,
			})
			selected = append(selected, File{Path: fd.path, Content: fd.content, Priority: fd.priority})
			total += fd.tokens
			continue
		}

		if strategy == StrategyTruncate || strategy == StrategyHybrid {
			truncated, ok := truncate(fd.path, fd.content)
			if ok {
				newTokens := EstimateFileTokens(fd.path, truncated)
				if total+newTokens <= budget {
					report.TruncatedCount++
					report.IncludedFiles = append(report.IncludedFiles, IncludedFile{
						Path: fd.path, Priority: fd.priority, Tokens: newTokens, Method: "truncated",
					})
					selected = append(selected, File{Path: fd.path, Content: truncated, Priority: fd.priority})
					total += newTokens
					continue
				}
			}
		}

		report.DroppedFiles = append(report.DroppedFiles, DroppedFile{
			Path: fd.path, Priority: fd.priority, Tokens: fd.originalTokens,
		})
	}

	report.Used = total
	report.SelectedCount = len(selected)
	report.DroppedCount = len(report.DroppedFiles)

	return selected, report
}
