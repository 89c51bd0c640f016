package budget

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a formatted budget report, normally to stderr so it
// never mixes with packed output on stdout.
func (r *Report) Print(w io.Writer) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "TOKEN BUDGET REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Budget:     %10s tokens\n", FormatNumber(r.Budget))
	fmt.Fprintf(w, "Used:       %10s tokens (%.1f%%)\n", FormatNumber(r.Used), r.UsedPercentage())
	fmt.Fprintf(w, "Remaining:  %10s tokens\n", FormatNumber(r.Remaining()))
	fmt.Fprintf(w, "Estimation: %s\n", r.EstimationMethod)
	fmt.Fprintf(w, "Strategy:   %s\n", r.Strategy)
	fmt.Fprintln(w)

	fullCount := 0
	for _, f := range r.IncludedFiles {
		if f.Method == "full" {
			fullCount++
		}
	}
	fmt.Fprintf(w, "Files included: %d (%d full, %d truncated)\n", r.SelectedCount, fullCount, r.TruncatedCount)
	fmt.Fprintf(w, "Files dropped:  %d (lowest priority first)\n", r.DroppedCount)

	if r.TruncatedCount > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Auto-truncated files (structure mode):")
		shown := 0
		truncatedTotal := 0
		for _, f := range r.IncludedFiles {
			if f.Method != "truncated" {
				continue
			}
			truncatedTotal++
			if shown < 5 {
				fmt.Fprintf(w, "  [P:%3d] %s (%s tokens)\n", f.Priority, f.Path, FormatNumber(f.Tokens))
				shown++
			}
		}
		if truncatedTotal > 5 {
			fmt.Fprintf(w, "  ... and %d more\n", truncatedTotal-5)
		}
	}

	if len(r.DroppedFiles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Dropped files:")
		for i, f := range r.DroppedFiles {
			if i >= 10 {
				fmt.Fprintf(w, "  ... and %d more\n", len(r.DroppedFiles)-10)
				break
			}
			fmt.Fprintf(w, "  [P:%3d] %s (%s tokens)\n", f.Priority, f.Path, FormatNumber(f.Tokens))
		}
	}

	fmt.Fprintln(w, rule)
}
