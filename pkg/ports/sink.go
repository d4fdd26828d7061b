package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving the per-window selections for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSelectedFrame saves the frame picked for a window, labelled with the given caption.
	SaveSelectedFrame(windowIndex int, img image.Image, caption string) error

	// SaveSelectionsJSON saves the list of selections as JSON.
	SaveSelectionsJSON(data []byte) error
}
