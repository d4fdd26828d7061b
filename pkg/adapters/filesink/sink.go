// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/user/lapse/pkg/ports"
)

const (
	// captionBand is the minimum height of the caption strip below each frame.
	captionBand = 24

	// captionMargin is the horizontal padding either side of the caption.
	captionMargin = 8

	// minCaptionFont is the smallest font a long caption is shrunk to.
	minCaptionFont = 6.0

	// maxFrameWidth bounds the width of saved frames; wider frames are
	// scaled down keeping their aspect ratio.
	maxFrameWidth = 1280
)

var captionBackground = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// FramePath returns where the frame selected for a window is written.
func (s *Sink) FramePath(windowIndex int) string {
	return filepath.Join(s.baseDir, "frames", fmt.Sprintf("window-%05d.png", windowIndex))
}

// SaveSelectedFrame saves the selected frame as PNG with the caption
// printed on a strip below it.
func (s *Sink) SaveSelectedFrame(windowIndex int, img image.Image, caption string) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	img = s.fitWidth(img)
	b := img.Bounds()
	band := b.Dy() / 12
	if band < captionBand {
		band = captionBand
	}

	canvas := s.renderer.CreateCanvas(b.Dx(), b.Dy()+band, color.Black)
	canvas.DrawImage(img, 0, 0)
	canvas.DrawRect(0, b.Dy(), b.Dx(), band, captionBackground)

	style := ports.TextStyle{
		FontSize: float64(band) * 0.6,
		Color:    color.White,
	}
	avail := float64(b.Dx() - 2*captionMargin)
	if w, _ := canvas.MeasureText(caption, style); w > avail && w > 0 {
		style.FontSize = math.Max(minCaptionFont, style.FontSize*avail/w)
	}
	canvas.DrawText(caption, captionMargin, b.Dy()+band/2, style)

	data, err := s.renderer.EncodePNG(canvas.ToImage())
	if err != nil {
		return fmt.Errorf("encode selected frame: %w", err)
	}
	return s.fs.WriteFile(s.FramePath(windowIndex), data)
}

// fitWidth scales img down to maxFrameWidth.
func (s *Sink) fitWidth(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxFrameWidth {
		return img
	}
	h := b.Dy() * maxFrameWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	return s.renderer.ResizeImage(img, maxFrameWidth, h)
}

// SaveSelectionsJSON saves the per-window selection list.
func (s *Sink) SaveSelectionsJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "selections.json")
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
