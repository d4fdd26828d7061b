// Package scoring implements the similarity strategies used to rank the
// frames of a window against the previously selected frame.
package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/lapse/pkg/ports"
)

// ErrUnsupportedMode is returned for comparison modes that have no scorer.
var ErrUnsupportedMode = errors.New("scoring: unsupported comparison mode")

// Mode selects the similarity strategy for a run.
type Mode string

const (
	ModeNoop           Mode = "noop"
	ModeBlockhash      Mode = "blockhash"
	ModeGradientHash   Mode = "gradienthash"
	ModeMeanHash       Mode = "meanhash"
	ModePerceptionHash Mode = "perceptionhash"
	ModeMSE            Mode = "mse"
	ModeSSIM           Mode = "ssim" // reserved
)

// Modes lists every mode name accepted on the command line.
func Modes() []Mode {
	return []Mode{
		ModeNoop,
		ModeBlockhash,
		ModeGradientHash,
		ModeMeanHash,
		ModePerceptionHash,
		ModeMSE,
		ModeSSIM,
	}
}

// ParseMode parses a mode name. Names are case-insensitive.
// Known but unimplemented modes parse successfully; use Supported to check them.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// Supported reports whether a scorer exists for the mode.
func (m Mode) Supported() bool {
	switch m {
	case ModeNoop, ModeBlockhash, ModeGradientHash, ModeMeanHash, ModePerceptionHash, ModeMSE:
		return true
	default:
		return false
	}
}

// Validate returns ErrUnsupportedMode for modes without a scorer.
func (m Mode) Validate() error {
	if !m.Supported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedMode, string(m))
	}
	return nil
}

// IsHash reports whether the mode compares perceptual hashes.
func (m Mode) IsHash() bool {
	_, ok := m.HashAlgorithm()
	return ok
}

// HashAlgorithm returns the hashing variant backing a hash mode.
func (m Mode) HashAlgorithm() (ports.HashAlgorithm, bool) {
	switch m {
	case ModeBlockhash:
		return ports.HashBlock, true
	case ModeGradientHash:
		return ports.HashGradient, true
	case ModeMeanHash:
		return ports.HashMean, true
	case ModePerceptionHash:
		return ports.HashPerception, true
	default:
		return "", false
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}
