package pipeline

import (
	"github.com/user/lapse/pkg/ports"
)

// Window is a bounded run of consecutive admitted frames.
// It is shorter than the configured size only at the end of the stream.
type Window struct {
	Index    int           // Sequence number of the window (0-based)
	Frames   []ports.Frame // Admitted frames in decode order
	Consumed int           // Source frames read to build the window, skipped ones included
}

// Len returns the number of candidate frames.
func (w Window) Len() int {
	return len(w.Frames)
}

// Empty reports whether the window has no candidates.
func (w Window) Empty() bool {
	return len(w.Frames) == 0
}

// Selection is the outcome of picking one frame out of a window.
type Selection struct {
	Frame      ports.Frame
	Position   int     // Index of the frame within its window
	Candidates int     // Window length
	Distance   float64 // Distance to the previous reference, informational
	Scored     bool    // False when no distance was computed (first window, noop)
}

// SelectionRecord is the serialisable form of a Selection for debug output.
type SelectionRecord struct {
	Window      int     `json:"window"`
	FrameIndex  int     `json:"frame_index"`
	TimestampMs int     `json:"timestamp_ms"`
	Position    int     `json:"position"`
	Candidates  int     `json:"candidates"`
	Distance    float64 `json:"distance"`
	Scored      bool    `json:"scored"`
}

// Record converts a Selection made for the given window into a SelectionRecord.
func (s Selection) Record(window int) SelectionRecord {
	return SelectionRecord{
		Window:      window,
		FrameIndex:  s.Frame.Index,
		TimestampMs: s.Frame.TimestampMs,
		Position:    s.Position,
		Candidates:  s.Candidates,
		Distance:    s.Distance,
		Scored:      s.Scored,
	}
}
