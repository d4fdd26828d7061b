package scoring

import (
	"errors"
	"fmt"

	"github.com/user/lapse/pkg/ports"
)

var (
	// ErrDimensionMismatch is returned when two summaries cover different frame sizes.
	ErrDimensionMismatch = errors.New("scoring: summaries have different dimensions")

	// ErrNoHasher is returned when a hash mode is configured without a hasher.
	ErrNoHasher = errors.New("scoring: hash mode requires a hasher")
)

// Summary is the comparable form of a frame.
// Only the field matching the scorer's mode is populated.
type Summary struct {
	Width  int
	Height int
	Luma   []byte
	Hash   ports.PerceptualHash
}

// Scorer computes summaries and distances for one mode.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	mode   Mode
	hasher ports.Hasher
}

// New creates a scorer for the mode. Hash modes require a hasher.
func New(mode Mode, hasher ports.Hasher) (*Scorer, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if mode.IsHash() && hasher == nil {
		return nil, ErrNoHasher
	}
	return &Scorer{mode: mode, hasher: hasher}, nil
}

// Mode returns the scorer's mode.
func (s *Scorer) Mode() Mode {
	return s.mode
}

// TracksReference reports whether the mode compares against a reference.
// Noop always keeps the first frame and never needs one.
func (s *Scorer) TracksReference() bool {
	return s.mode != ModeNoop
}

// Summarize computes the comparable summary of a frame.
func (s *Scorer) Summarize(frame ports.Frame) (Summary, error) {
	if err := frame.Validate(); err != nil {
		return Summary{}, fmt.Errorf("summarize frame %d: %w", frame.Index, err)
	}

	summary := Summary{Width: frame.Width, Height: frame.Height}
	switch s.mode {
	case ModeNoop:
		return summary, nil
	case ModeMSE:
		summary.Luma = LumaPlane(frame)
		return summary, nil
	case ModeBlockhash, ModeGradientHash, ModeMeanHash, ModePerceptionHash:
		hash, err := s.hasher.Hash(frame)
		if err != nil {
			return Summary{}, fmt.Errorf("hash frame %d: %w", frame.Index, err)
		}
		summary.Hash = hash
		return summary, nil
	default:
		return Summary{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(s.mode))
	}
}

// Distance scores a candidate summary against the reference. Lower is better.
func (s *Scorer) Distance(candidate, reference Summary) (float64, error) {
	if candidate.Width != reference.Width || candidate.Height != reference.Height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			candidate.Width, candidate.Height, reference.Width, reference.Height)
	}

	switch s.mode {
	case ModeNoop:
		return 0, nil
	case ModeMSE:
		return MSE(candidate.Luma, reference.Luma)
	case ModeBlockhash, ModeGradientHash, ModeMeanHash, ModePerceptionHash:
		d, err := s.hasher.Distance(candidate.Hash, reference.Hash)
		if err != nil {
			return 0, fmt.Errorf("hash distance: %w", err)
		}
		return float64(d), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, string(s.mode))
	}
}
