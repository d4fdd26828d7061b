package mocks

import (
	"errors"
	"math/bits"
	"sync"

	"github.com/user/lapse/pkg/ports"
)

// Hasher is a mock implementation of ports.Hasher.
// By default the hash value is the first pixel byte of the frame.
type Hasher struct {
	mu sync.Mutex

	Algorithm    ports.HashAlgorithm
	HashFunc     func(frame ports.Frame) (ports.PerceptualHash, error)
	DistanceFunc func(a, b ports.PerceptualHash) (int, error)

	HashCalls int
}

func (m *Hasher) Hash(frame ports.Frame) (ports.PerceptualHash, error) {
	m.mu.Lock()
	m.HashCalls++
	m.mu.Unlock()
	if m.HashFunc != nil {
		return m.HashFunc(frame)
	}
	if len(frame.Pix) == 0 {
		return ports.PerceptualHash{}, ports.ErrEmptyFrame
	}
	return ports.PerceptualHash{Algorithm: m.Algorithm, Value: uint64(frame.Pix[0])}, nil
}

func (m *Hasher) Distance(a, b ports.PerceptualHash) (int, error) {
	if m.DistanceFunc != nil {
		return m.DistanceFunc(a, b)
	}
	if a.Algorithm != b.Algorithm {
		return 0, errors.New("mock hasher: algorithm mismatch")
	}
	return bits.OnesCount64(a.Value ^ b.Value), nil
}

var _ ports.Hasher = (*Hasher)(nil)
