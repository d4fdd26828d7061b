package scoring

import (
	"errors"
	"testing"

	"github.com/user/lapse/pkg/mocks"
	"github.com/user/lapse/pkg/ports"
)

func TestNew_HashModeRequiresHasher(t *testing.T) {
	if _, err := New(ModeMeanHash, nil); !errors.Is(err, ErrNoHasher) {
		t.Errorf("expected ErrNoHasher, got %v", err)
	}
	if _, err := New(ModeMSE, nil); err != nil {
		t.Errorf("mse should not need a hasher: %v", err)
	}
	if _, err := New(ModeSSIM, nil); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("expected ErrUnsupportedMode, got %v", err)
	}
}

func TestScorer_TracksReference(t *testing.T) {
	noop, _ := New(ModeNoop, nil)
	mse, _ := New(ModeMSE, nil)
	if noop.TracksReference() {
		t.Error("noop should not track a reference")
	}
	if !mse.TracksReference() {
		t.Error("mse should track a reference")
	}
}

func TestScorer_MSE_SelfDistanceIsZero(t *testing.T) {
	s, _ := New(ModeMSE, nil)
	f := mocks.SolidFrame(0, 4, 4, 123)

	sum, err := s.Summarize(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := s.Distance(sum, sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestScorer_MSE_UsesFirstChannelOnly(t *testing.T) {
	s, _ := New(ModeMSE, nil)
	a := mocks.SolidFrame(0, 2, 2, 10)
	b := mocks.SolidFrame(1, 2, 2, 10)
	// Change only the second and third channel of every pixel.
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i+1] = 200
		b.Pix[i+2] = 0
	}

	sa, _ := s.Summarize(a)
	sb, _ := s.Summarize(b)
	d, err := s.Distance(sa, sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestScorer_DimensionMismatch(t *testing.T) {
	for _, mode := range []Mode{ModeMSE, ModeMeanHash} {
		s, _ := New(mode, &mocks.Hasher{Algorithm: ports.HashMean})
		sa, _ := s.Summarize(mocks.SolidFrame(0, 4, 4, 0))
		sb, _ := s.Summarize(mocks.SolidFrame(1, 4, 2, 0))
		if _, err := s.Distance(sa, sb); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%s: expected ErrDimensionMismatch, got %v", mode, err)
		}
	}
}

func TestScorer_SummarizeRejectsMalformedFrames(t *testing.T) {
	s, _ := New(ModeMSE, nil)

	if _, err := s.Summarize(ports.Frame{Width: 2, Height: 2}); !errors.Is(err, ports.ErrEmptyFrame) {
		t.Errorf("expected ErrEmptyFrame, got %v", err)
	}

	bad := mocks.SolidFrame(0, 2, 2, 0)
	bad.Pix = bad.Pix[:5]
	if _, err := s.Summarize(bad); !errors.Is(err, ports.ErrMalformedFrame) {
		t.Errorf("expected ErrMalformedFrame, got %v", err)
	}
}

func TestScorer_HashDistanceUsesHasher(t *testing.T) {
	h := &mocks.Hasher{Algorithm: ports.HashBlock}
	s, err := New(ModeBlockhash, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sa, _ := s.Summarize(mocks.SolidFrame(0, 2, 2, 0x0f))
	sb, _ := s.Summarize(mocks.SolidFrame(1, 2, 2, 0x00))
	d, err := s.Distance(sa, sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 4 {
		t.Errorf("expected distance 4, got %v", d)
	}
	if h.HashCalls != 2 {
		t.Errorf("expected 2 hash calls, got %d", h.HashCalls)
	}
}

func TestScorer_HashErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	h := &mocks.Hasher{HashFunc: func(ports.Frame) (ports.PerceptualHash, error) {
		return ports.PerceptualHash{}, boom
	}}
	s, _ := New(ModeGradientHash, h)
	if _, err := s.Summarize(mocks.SolidFrame(7, 2, 2, 0)); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
