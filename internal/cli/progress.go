package cli

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// packProgress renders a progress bar while the engine processes
// files.
type packProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newPackProgress(quiet bool) *packProgress {
	return &packProgress{quiet: quiet}
}

// onFile is the engine progress callback. The bar is created lazily
// once the total is known.
func (p *packProgress) onFile(done, total int, path string) {
	if p.quiet || total == 0 {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Packing files"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
		)
	}
	_ = p.bar.Set(done)
}

// finish clears the bar so the report starts on a clean line.
func (p *packProgress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		_ = p.bar.Clear()
		p.bar = nil
	}
}
