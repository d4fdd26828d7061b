// Package videoprobe reads stream properties of an input video before
// decoding: frame size, frame rate, and frame and key frame counts.
package videoprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/user/lapse/pkg/ports"
)

var (
	// ErrNoVideoTrack is returned when the input carries no video stream.
	ErrNoVideoTrack = errors.New("videoprobe: no video track found")

	// ErrUnknownFrameSize is returned when the sample entry does not carry
	// the frame dimensions, as with sample entries the parser does not know.
	ErrUnknownFrameSize = errors.New("videoprobe: frame size not found")

	// ErrProbeFailed is returned when ffprobe fails.
	ErrProbeFailed = errors.New("videoprobe: ffprobe failed")
)

// Prober inspects video files.
type Prober struct {
	ffprobePath string
	logger      ports.Logger
}

// New creates a prober. ffprobePath may be empty, which disables the ffprobe fallback.
func New(ffprobePath string, logger ports.Logger) *Prober {
	return &Prober{
		ffprobePath: ffprobePath,
		logger:      logger.WithComponent("probe"),
	}
}

// Probe returns the properties of the first video stream of the file.
// ISO BMFF files are read directly; other containers go through ffprobe.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if isMP4(path) {
		info, err := p.probeMP4(path)
		if err == nil {
			p.logger.Debug("Probed %s from sample tables: %dx%d, %d frames", path, info.Width, info.Height, info.FrameCount)
			return info, nil
		}
		p.logger.Debug("Sample table probe failed, falling back to ffprobe: %v", err)
	}

	if p.ffprobePath == "" {
		return ports.VideoInfo{}, fmt.Errorf("%w: ffprobe not available for %s", ErrProbeFailed, path)
	}
	return p.probeFFprobe(ctx, path)
}

func (p *Prober) probeMP4(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return FromMP4(f)
}

func (p *Prober) probeFFprobe(ctx context.Context, path string) (ports.VideoInfo, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,avg_frame_rate,r_frame_rate,nb_frames",
		"-of", "json",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %v: %s", ErrProbeFailed, err, strings.TrimSpace(stderr.String()))
	}
	return ParseFFprobe(stdout.Bytes())
}

func isMP4(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov", ".3gp":
		return true
	default:
		return false
	}
}
