package serialize

import (
	"fmt"

	"github.com/mvp-joe/codescope/internal/zoom"
)

// TruncationMarker renders the comment marking truncated content, with
// a zoom affordance when an action is offered.
func TruncationMarker(originalLines, keptLines int, action *zoom.Action) string {
	marker := fmt.Sprintf("/* TRUNCATED: %d lines → %d lines */\n", originalLines, keptLines)
	if action != nil {
		marker += action.AffordanceComment() + "\n"
	}
	return marker
}

// GapMarker renders the comment for an omitted region inside a file.
func GapMarker(startLine, endLine int, context string) string {
	return fmt.Sprintf("\n/* ... %d lines omitted (%s) [lines %d-%d] ... */\n",
		endLine-startLine, context, startLine, endLine)
}
