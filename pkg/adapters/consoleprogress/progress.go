// Package consoleprogress renders decode progress as a terminal progress bar.
package consoleprogress

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/user/lapse/pkg/ports"
)

// Bar reports progress with a progressbar.ProgressBar.
// An unknown total renders a spinner instead of a bar.
type Bar struct {
	writer      io.Writer
	description string

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// New creates a progress reporter writing to w.
func New(w io.Writer, description string) *Bar {
	return &Bar{writer: w, description: description}
}

// Start creates the underlying bar. A negative total means unknown.
func (b *Bar) Start(total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if total <= 0 {
		total = -1
	}
	b.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(b.writer),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(b.writer, "\n")
		}),
	)
}

// Add advances the bar by n frames.
func (b *Bar) Add(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil || n <= 0 {
		return
	}
	b.bar.Add(n)
}

// Finish completes the bar.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	b.bar.Finish()
	b.bar = nil
}

var _ ports.Progress = (*Bar)(nil)

// Noop discards progress reports.
type Noop struct{}

// NewNoop creates a reporter that draws nothing.
func NewNoop() Noop { return Noop{} }

func (Noop) Start(total int64) {}
func (Noop) Add(n int)         {}
func (Noop) Finish()           {}

var _ ports.Progress = Noop{}
