// Package ffmpegsource decodes the video stream of a file into RGB24 frames
// by running ffmpeg as a subprocess and reading raw video from its stdout.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

var (
	// ErrDecodeFailed is returned when ffmpeg exits with an error or emits a truncated frame.
	ErrDecodeFailed = errors.New("ffmpegsource: decode failed")

	// ErrInvalidSize is returned when the frame geometry is unknown.
	ErrInvalidSize = errors.New("ffmpegsource: frame size must be positive")
)

// Options configures the decoder.
type Options struct {
	FFmpegPath    string
	Input         string
	Width         int     // Decoded frame width
	Height        int     // Decoded frame height
	FPS           float64 // Source frame rate, used for timestamps
	KeyFramesOnly bool    // Ask the decoder to drop everything but key frames
}

// Source reads frames from an ffmpeg child process.
type Source struct {
	opts      Options
	frameSize int

	mu      sync.Mutex
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	stdout  io.ReadCloser
	reader  *bufio.Reader
	stderr  bytes.Buffer
	index   int
	done    bool
	waitErr error
}

// New creates a source; the ffmpeg process starts on the first Next call.
func New(opts Options) (*Source, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	return &Source{
		opts:      opts,
		frameSize: opts.Width * opts.Height * ports.PixelFormatRGB24.BytesPerPixel(),
	}, nil
}

// BuildArgs returns the ffmpeg arguments used to decode the input.
func BuildArgs(opts Options) []string {
	args := []string{"-hide_banner", "-nostdin", "-v", "error"}
	if opts.KeyFramesOnly {
		args = append(args, "-skip_frame", "nokey")
	}
	args = append(args,
		"-i", opts.Input,
		"-map", "0:v:0",
		"-an", "-sn",
		"-fps_mode", "passthrough",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=bilinear", opts.Width, opts.Height),
		"-f", "rawvideo",
		"-pix_fmt", ports.PixelFormatRGB24.String(),
		"pipe:1",
	)
	return args
}

func (s *Source) start(ctx context.Context) error {
	// The child outlives a single Next call, so it gets its own context.
	procCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cmd := exec.CommandContext(procCtx, s.opts.FFmpegPath, BuildArgs(s.opts)...)
	cmd.Stderr = &s.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.cancel = cancel
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, s.frameSize)
	return nil
}

// Next returns the next decoded frame, or ports.ErrEndOfStream.
func (s *Source) Next(ctx context.Context) (ports.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return ports.Frame{}, s.endErr()
	}
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}
	if s.cmd == nil {
		if err := s.start(ctx); err != nil {
			s.done = true
			s.waitErr = fmt.Errorf("%w: %v", ErrDecodeFailed, err)
			return ports.Frame{}, s.waitErr
		}
	}

	pix := make([]byte, s.frameSize)
	n, err := io.ReadFull(s.reader, pix)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.finish()
		return ports.Frame{}, s.endErr()
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.finish()
		if s.waitErr == nil {
			s.waitErr = fmt.Errorf("%w: truncated frame %d (%d of %d bytes)", ErrDecodeFailed, s.index, n, s.frameSize)
		}
		return ports.Frame{}, s.waitErr
	default:
		s.finish()
		return ports.Frame{}, fmt.Errorf("%w: read frame %d: %v", ErrDecodeFailed, s.index, err)
	}

	frame := ports.Frame{
		Index:       s.index,
		TimestampMs: timestampMs(s.index, s.opts.FPS),
		Key:         s.opts.KeyFramesOnly,
		Width:       s.opts.Width,
		Height:      s.opts.Height,
		Format:      ports.PixelFormatRGB24,
		Pix:         pix,
	}
	s.index++
	return frame, nil
}

// finish reaps the child process and records how it exited.
func (s *Source) finish() {
	s.done = true
	if err := s.cmd.Wait(); err != nil {
		s.waitErr = fmt.Errorf("%w: %v: %s", ErrDecodeFailed, err, strings.TrimSpace(s.stderr.String()))
	}
	s.cancel()
}

func (s *Source) endErr() error {
	if s.waitErr != nil {
		return s.waitErr
	}
	return ports.ErrEndOfStream
}

// Close stops the decoder process if it is still running.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil || s.done {
		return nil
	}
	s.done = true
	s.cancel()
	s.stdout.Close()
	s.cmd.Wait()
	return nil
}

// Decoded returns the number of frames read so far.
func (s *Source) Decoded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func timestampMs(index int, fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(float64(index) * 1000 / fps)
}

var _ ports.FrameSource = (*Source)(nil)
