// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

// FrameSource replays a fixed list of frames.
type FrameSource struct {
	Frames []ports.Frame

	// FailAt makes Next return Err instead of the frame at that position. -1 disables it.
	FailAt int
	Err    error

	NextCalls   int
	CloseCalled bool

	pos int
}

// NewFrameSource creates a source that yields the given frames in order.
func NewFrameSource(frames ...ports.Frame) *FrameSource {
	return &FrameSource{Frames: frames, FailAt: -1}
}

func (m *FrameSource) Next(ctx context.Context) (ports.Frame, error) {
	m.NextCalls++
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}
	if m.FailAt >= 0 && m.pos == m.FailAt {
		return ports.Frame{}, m.Err
	}
	if m.pos >= len(m.Frames) {
		return ports.Frame{}, ports.ErrEndOfStream
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, nil
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	return nil
}

var _ ports.FrameSource = (*FrameSource)(nil)

// FrameSink records accepted frames.
type FrameSink struct {
	mu sync.Mutex

	AcceptFunc   func(frame ports.Frame) error
	FinalizeFunc func() error

	Accepted      []ports.Frame
	FinalizeCalls int
	CloseCalls    int
}

func (m *FrameSink) Accept(frame ports.Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AcceptFunc != nil {
		if err := m.AcceptFunc(frame); err != nil {
			return err
		}
	}
	m.Accepted = append(m.Accepted, frame)
	return nil
}

func (m *FrameSink) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCalls++
	if m.FinalizeFunc != nil {
		return m.FinalizeFunc()
	}
	return nil
}

func (m *FrameSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

// AcceptedIndices returns the source indices of the accepted frames.
func (m *FrameSink) AcceptedIndices() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.Accepted))
	for i, f := range m.Accepted {
		out[i] = f.Index
	}
	return out
}

var _ ports.FrameSink = (*FrameSink)(nil)

// SolidFrame builds a frame whose pixels all carry the given gray level.
func SolidFrame(index, width, height int, level byte) ports.Frame {
	pix := make([]byte, width*height*3)
	for i := range pix {
		pix[i] = level
	}
	return ports.Frame{
		Index:       index,
		TimestampMs: index * 40,
		Key:         true,
		Width:       width,
		Height:      height,
		Format:      ports.PixelFormatRGB24,
		Pix:         pix,
	}
}
