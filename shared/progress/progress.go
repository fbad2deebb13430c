// Package progress draws the query progress bar on stderr.
package progress

import (
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Bar counts finished tasks. A nil *Bar is valid and draws nothing.
type Bar struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// New creates a bar for total tasks, or returns nil when disabled.
func New(total int, description string, enabled bool) *Bar {
	if !enabled || total <= 0 {
		return nil
	}
	return newBar(os.Stderr, total, description)
}

func newBar(w io.Writer, total int, description string) *Bar {
	return &Bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
	)}
}

// Step advances the bar by one finished task.
func (b *Bar) Step(description string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if description != "" {
		b.bar.Describe(description)
	}
	_ = b.bar.Add(1)
}

// Clear erases the bar so a line can be printed above it.
func (b *Bar) Clear() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = b.bar.Clear()
}

// Finish completes and removes the bar.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_ = b.bar.Finish()
}
