// Package window groups decoded frames into fixed-size windows.
package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/lapse/pkg/pipeline"
	"github.com/user/lapse/pkg/ports"
)

// ErrInvalidSize is returned for window sizes below one.
var ErrInvalidSize = errors.New("window: size must be at least 1")

// Options controls which frames are admitted into windows.
type Options struct {
	Size          int  // Frames per window
	Skip          int  // Eligible frames discarded before each admitted frame
	KeyFramesOnly bool // Drop frames without the key flag
}

// Collector reads frames from a source and groups them into windows.
// It reads the source sequentially and is not safe for concurrent use.
type Collector struct {
	source ports.FrameSource
	opts   Options

	next     int
	consumed int
	done     bool
}

// NewCollector creates a collector over the source.
func NewCollector(source ports.FrameSource, opts Options) (*Collector, error) {
	if opts.Size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, opts.Size)
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return &Collector{source: source, opts: opts}, nil
}

// Consumed returns the total number of frames read from the source.
func (c *Collector) Consumed() int {
	return c.consumed
}

// Next returns the next window. At the end of the stream the window may be
// short, and once the stream is exhausted it is empty.
func (c *Collector) Next(ctx context.Context) (pipeline.Window, error) {
	w := pipeline.Window{
		Index:  c.next,
		Frames: make([]ports.Frame, 0, c.opts.Size),
	}
	if c.done {
		return w, nil
	}

	skipped := 0
	for len(w.Frames) < c.opts.Size {
		frame, err := c.source.Next(ctx)
		if errors.Is(err, ports.ErrEndOfStream) {
			c.done = true
			break
		}
		if err != nil {
			return pipeline.Window{}, fmt.Errorf("read frame %d: %w", c.consumed, err)
		}
		c.consumed++
		w.Consumed++

		if c.opts.KeyFramesOnly && !frame.Key {
			continue
		}
		if skipped < c.opts.Skip {
			skipped++
			continue
		}
		skipped = 0
		w.Frames = append(w.Frames, frame)
	}

	if !w.Empty() {
		c.next++
	}
	return w, nil
}

var _ pipeline.WindowSource = (*Collector)(nil)
