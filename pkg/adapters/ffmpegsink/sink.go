// Package ffmpegsink encodes selected frames into a video file by piping
// raw RGB24 frames into an ffmpeg subprocess.
package ffmpegsink

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

var (
	// ErrEncodeFailed is returned when ffmpeg rejects input or exits with an error.
	ErrEncodeFailed = errors.New("ffmpegsink: encode failed")

	// ErrNotInitialized is returned when frames arrive after Finalize or Close.
	ErrNotInitialized = errors.New("ffmpegsink: encoder not running")

	// ErrFrameSize is returned for frames that do not match the output geometry.
	ErrFrameSize = errors.New("ffmpegsink: frame size differs from output size")

	// ErrUnsupportedCodec is returned for codecs other than vp9 and h264.
	ErrUnsupportedCodec = errors.New("ffmpegsink: unsupported codec")
)

// Codec names.
const (
	CodecVP9  = "vp9"
	CodecH264 = "h264"
)

// Defaults applied when EncoderOptions leave a field unset. Quality is unset
// when negative, since CRF 0 is a valid lossless setting.
const (
	DefaultCodec   = CodecVP9
	DefaultCRF     = 32
	DefaultBitrate = 6144 // kbps
	DefaultFPS     = 25.0
	gopSize        = 10
)

// Options configures the encoder.
type Options struct {
	FFmpegPath string
	Output     string
	Width      int
	Height     int
	Encoder    ports.EncoderOptions
}

// Normalize fills defaults and checks the codec. libx264 cannot encode
// yuv420p at odd dimensions, so h264 output requires an even size.
func (o Options) Normalize() (Options, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return o, fmt.Errorf("%w: invalid size %dx%d", ErrEncodeFailed, o.Width, o.Height)
	}
	e := o.Encoder
	if e.Codec == "" {
		e.Codec = DefaultCodec
	}
	e.Codec = strings.ToLower(e.Codec)
	if e.Codec != CodecVP9 && e.Codec != CodecH264 {
		return o, fmt.Errorf("%w: %q", ErrUnsupportedCodec, e.Codec)
	}
	if e.Codec == CodecH264 && (o.Width%2 != 0 || o.Height%2 != 0) {
		return o, fmt.Errorf("%w: h264 needs even dimensions, got %dx%d", ErrFrameSize, o.Width, o.Height)
	}
	if e.Quality < 0 {
		e.Quality = DefaultCRF
	}
	if e.Bitrate < 0 {
		e.Bitrate = 0
	}
	if e.FPS <= 0 {
		e.FPS = DefaultFPS
	}
	o.Encoder = e
	return o, nil
}

// BuildArgs returns the ffmpeg arguments for normalized options.
func BuildArgs(o Options) []string {
	e := o.Encoder
	args := []string{
		"-hide_banner", "-v", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", ports.PixelFormatRGB24.String(),
		"-s", fmt.Sprintf("%dx%d", o.Width, o.Height),
		"-r", strconv.FormatFloat(e.FPS, 'f', -1, 64),
		"-i", "pipe:0",
		"-an",
	}

	switch e.Codec {
	case CodecH264:
		// x264 CRF tops out at 51.
		crf := e.Quality
		if crf > 51 {
			crf = 51
		}
		args = append(args,
			"-c:v", "libx264",
			"-preset", "medium",
			"-crf", strconv.Itoa(crf),
		)
		if e.Bitrate > 0 {
			args = append(args, "-maxrate", fmt.Sprintf("%dk", e.Bitrate), "-bufsize", fmt.Sprintf("%dk", e.Bitrate*2))
		}
		args = append(args, "-movflags", "+faststart", "-f", "mp4")
	default:
		crf := e.Quality
		if crf > 63 {
			crf = 63
		}
		args = append(args,
			"-c:v", "libvpx-vp9",
			"-crf", strconv.Itoa(crf),
			"-b:v", fmt.Sprintf("%dk", e.Bitrate),
		)
		if e.Bitrate > 0 {
			args = append(args, "-maxrate", fmt.Sprintf("%dk", e.Bitrate*10/6))
		}
		args = append(args, "-f", "webm")
	}

	args = append(args,
		"-g", strconv.Itoa(gopSize),
		"-pix_fmt", "yuv420p",
		o.Output,
	)
	return args
}

// Sink writes frames to an ffmpeg child process.
// Output is written to the destination path as frames arrive.
type Sink struct {
	opts Options

	mu         sync.Mutex
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	frameCount int
	finalized  bool
	closed     bool
}

// New creates a sink. ffmpeg starts with the first accepted frame, so a run
// that selects nothing leaves no output file behind.
func New(opts Options) (*Sink, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	return &Sink{opts: opts}, nil
}

// Options returns the normalized options.
func (s *Sink) Options() Options {
	return s.opts
}

func (s *Sink) start() error {
	cmd := exec.Command(s.opts.FFmpegPath, BuildArgs(s.opts)...)
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: stdin pipe: %v", ErrEncodeFailed, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start ffmpeg: %v", ErrEncodeFailed, err)
	}
	s.cmd = cmd
	s.stdin = stdin
	return nil
}

// Accept writes one frame to the encoder.
func (s *Sink) Accept(frame ports.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized || s.closed {
		return ErrNotInitialized
	}
	if frame.Width != s.opts.Width || frame.Height != s.opts.Height {
		return fmt.Errorf("%w: %dx%d, want %dx%d", ErrFrameSize, frame.Width, frame.Height, s.opts.Width, s.opts.Height)
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	if s.cmd == nil {
		if err := s.start(); err != nil {
			return err
		}
	}

	if _, err := s.stdin.Write(frame.Pix); err != nil {
		// ffmpeg went away; reap it so stderr is complete.
		s.closed = true
		s.stdin.Close()
		s.cmd.Wait()
		return fmt.Errorf("%w: write frame %d: %v: %s", ErrEncodeFailed, frame.Index, err, s.stderrText())
	}
	s.frameCount++
	return nil
}

// Finalize flushes the encoder and closes the output file.
func (s *Sink) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized || s.closed {
		return ErrNotInitialized
	}
	s.finalized = true

	// ffmpeg needs at least one frame to write a valid container.
	if s.cmd == nil {
		return nil
	}

	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrEncodeFailed, err, s.stderrText())
	}
	return nil
}

// Close kills a running encoder. It is safe after Finalize.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.cmd == nil || s.finalized {
		return nil
	}
	s.stdin.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	return nil
}

// FrameCount returns the number of frames written.
func (s *Sink) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameCount
}

func (s *Sink) stderrText() string {
	return strings.TrimSpace(s.stderr.String())
}

var _ ports.FrameSink = (*Sink)(nil)
