// Package summarizer renders a Markdown report of a timelapse run.
package summarizer

import "time"

// Summary contains everything reported about one run.
type Summary struct {
	GeneratedAt time.Time

	Input     InputInfo
	Settings  Settings
	Selection SelectionInfo
	Video     VideoInfo
}

// InputInfo describes the source video as probed before decoding.
type InputInfo struct {
	Path          string
	Codec         string
	Width         int
	Height        int
	FPS           float64
	FrameCount    int // -1 when unknown
	KeyFrameCount int // -1 when unknown
}

// Settings contains the selection configuration.
type Settings struct {
	Mode          string
	WindowSize    int
	FrameSkip     int
	KeyFramesOnly bool
	Workers       int
}

// SelectionInfo contains the selection statistics of the run.
type SelectionInfo struct {
	Windows        int
	FramesDecoded  int
	FramesSelected int
	ScoredWindows  int
	MeanDistance   float64
	MaxDistance    float64
	Elapsed        time.Duration
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path       string
	Codec      string
	CRF        int
	Bitrate    int // kbps
	FPS        float64
	FrameCount int
	FileSize   int64
}

// DurationMs returns the playback length of the output.
func (v VideoInfo) DurationMs() int {
	if v.FPS <= 0 {
		return 0
	}
	return int(float64(v.FrameCount) * 1000 / v.FPS)
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets source video information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets selection settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithSelection sets selection statistics.
func (b *Builder) WithSelection(selection SelectionInfo) *Builder {
	b.summary.Selection = selection
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
