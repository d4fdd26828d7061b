// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
	"image"
)

// ErrEndOfStream is returned by a FrameSource when no frames are left.
// It is the normal termination signal, not a failure.
var ErrEndOfStream = errors.New("end of stream")

// PixelFormat tags the layout of Frame.Pix.
type PixelFormat int

const (
	// PixelFormatRGB24 is packed 8-bit RGB, 3 bytes per pixel, row-major.
	PixelFormatRGB24 PixelFormat = iota
)

// String returns the ffmpeg name of the pixel format.
func (p PixelFormat) String() string {
	switch p {
	case PixelFormatRGB24:
		return "rgb24"
	default:
		return "unknown"
	}
}

// BytesPerPixel returns the number of bytes one pixel occupies.
func (p PixelFormat) BytesPerPixel() int {
	switch p {
	case PixelFormatRGB24:
		return 3
	default:
		return 0
	}
}

// Frame is a decoded, scaled video frame.
// A Frame is never mutated after the source produced it.
type Frame struct {
	Index       int  // Position in the decoded stream (0-based)
	TimestampMs int  // Presentation timestamp in milliseconds
	Key         bool // True when the frame is independently decodable
	Width       int
	Height      int
	Format      PixelFormat
	Pix         []byte
}

// Validate checks that the buffer matches the declared geometry.
func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 || len(f.Pix) == 0 {
		return ErrEmptyFrame
	}
	bpp := f.Format.BytesPerPixel()
	if bpp == 0 || len(f.Pix) != f.Width*f.Height*bpp {
		return ErrMalformedFrame
	}
	return nil
}

// ToRGBA converts the frame into an image.RGBA with an opaque alpha channel.
func (f Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	n := f.Width * f.Height
	if len(f.Pix) < n*3 {
		return img
	}
	for i := 0; i < n; i++ {
		img.Pix[i*4] = f.Pix[i*3]
		img.Pix[i*4+1] = f.Pix[i*3+1]
		img.Pix[i*4+2] = f.Pix[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

var (
	// ErrEmptyFrame is returned for frames without pixel data.
	ErrEmptyFrame = errors.New("frame has no pixel data")

	// ErrMalformedFrame is returned when the pixel buffer does not match width*height.
	ErrMalformedFrame = errors.New("frame buffer does not match its dimensions")
)

// VideoInfo describes the video stream of an input file.
type VideoInfo struct {
	Width         int
	Height        int
	FPS           float64
	FrameCount    int    // -1 when unknown
	KeyFrameCount int    // -1 when unknown
	Codec         string // Sample entry or codec name, e.g. "avc1", "h264"
}

// FrameSource produces decoded frames one at a time.
// Decoding is stateful, so Next must not be called concurrently.
type FrameSource interface {
	// Next returns the next decoded frame, or ErrEndOfStream.
	Next(ctx context.Context) (Frame, error)

	// Close releases decoder resources.
	Close() error
}

// FrameSink consumes selected frames and writes the output video.
type FrameSink interface {
	// Accept encodes one frame.
	Accept(frame Frame) error

	// Finalize flushes the encoder and closes the output container.
	// It must be called exactly once, after the last Accept.
	Finalize() error

	// Close releases encoder resources without finalizing.
	// It is safe to call after Finalize and more than once.
	Close() error
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Codec   string  // "vp9" (WebM) or "h264" (MP4)
	Quality int     // CRF value: 0-63 (lower is higher quality), negative for the default
	Bitrate int     // Target bitrate in kbps, 0 = codec default
	FPS     float64 // Output frame rate
}
