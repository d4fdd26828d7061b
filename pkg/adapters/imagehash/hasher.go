// Package imagehash computes perceptual hashes of frames with goimagehash.
package imagehash

import (
	"errors"
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
	"golang.org/x/image/draw"

	"github.com/user/lapse/pkg/ports"
)

var (
	// ErrUnknownAlgorithm is returned for algorithms this package does not implement.
	ErrUnknownAlgorithm = errors.New("imagehash: unknown algorithm")

	// ErrAlgorithmMismatch is returned when comparing hashes of different algorithms.
	ErrAlgorithmMismatch = errors.New("imagehash: hashes use different algorithms")
)

// hashInputSize is the square size frames are reduced to before hashing.
// Every algorithm shrinks further internally.
const hashInputSize = 64

// Hasher implements ports.Hasher for one algorithm.
type Hasher struct {
	algorithm ports.HashAlgorithm
	kind      goimagehash.Kind
}

// New creates a hasher for the algorithm.
func New(algorithm ports.HashAlgorithm) (*Hasher, error) {
	kind, err := kindOf(algorithm)
	if err != nil {
		return nil, err
	}
	return &Hasher{algorithm: algorithm, kind: kind}, nil
}

// Algorithm returns the hasher's algorithm.
func (h *Hasher) Algorithm() ports.HashAlgorithm {
	return h.algorithm
}

// Hash fingerprints a frame.
func (h *Hasher) Hash(frame ports.Frame) (ports.PerceptualHash, error) {
	if err := frame.Validate(); err != nil {
		return ports.PerceptualHash{}, err
	}
	img := shrink(frame.ToRGBA(), hashInputSize)

	var (
		ih  *goimagehash.ImageHash
		err error
	)
	switch h.algorithm {
	case ports.HashBlock:
		ih = goimagehash.NewImageHash(Blockhash(img), h.kind)
	case ports.HashGradient:
		ih, err = goimagehash.DifferenceHash(img)
	case ports.HashMean:
		ih, err = goimagehash.AverageHash(img)
	case ports.HashPerception:
		ih, err = goimagehash.PerceptionHash(img)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAlgorithm, h.algorithm)
	}
	if err != nil {
		return ports.PerceptualHash{}, fmt.Errorf("%s hash: %w", h.algorithm, err)
	}
	return ports.PerceptualHash{Algorithm: h.algorithm, Value: ih.GetHash()}, nil
}

// Distance returns the Hamming distance between two hashes.
func (h *Hasher) Distance(a, b ports.PerceptualHash) (int, error) {
	if a.Algorithm != b.Algorithm {
		return 0, fmt.Errorf("%w: %s vs %s", ErrAlgorithmMismatch, a.Algorithm, b.Algorithm)
	}
	kind, err := kindOf(a.Algorithm)
	if err != nil {
		return 0, err
	}
	return goimagehash.NewImageHash(a.Value, kind).Distance(goimagehash.NewImageHash(b.Value, kind))
}

func kindOf(algorithm ports.HashAlgorithm) (goimagehash.Kind, error) {
	switch algorithm {
	case ports.HashBlock:
		return goimagehash.Unknown, nil
	case ports.HashGradient:
		return goimagehash.DHash, nil
	case ports.HashMean:
		return goimagehash.AHash, nil
	case ports.HashPerception:
		return goimagehash.PHash, nil
	default:
		return goimagehash.Unknown, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// shrink scales img to size x size unless it is already that small.
func shrink(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

var _ ports.Hasher = (*Hasher)(nil)
