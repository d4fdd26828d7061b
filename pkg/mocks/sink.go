package mocks

import (
	"image"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SelectedFrames map[int]image.Image
	Captions       map[int]string
	SelectionsJSON []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:        enabled,
		SelectedFrames: make(map[int]image.Image),
		Captions:       make(map[int]string),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSelectedFrame(windowIndex int, img image.Image, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SelectedFrames[windowIndex] = img
	m.Captions[windowIndex] = caption
	return nil
}

func (m *DebugSink) SaveSelectionsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SelectionsJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
