package window

import (
	"context"
	"errors"
	"testing"

	"github.com/user/lapse/pkg/mocks"
	"github.com/user/lapse/pkg/ports"
)

func frames(n int) []ports.Frame {
	out := make([]ports.Frame, n)
	for i := range out {
		out[i] = mocks.SolidFrame(i, 2, 2, byte(i))
	}
	return out
}

func indices(fs []ports.Frame) []int {
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = f.Index
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewCollector_InvalidSize(t *testing.T) {
	if _, err := NewCollector(mocks.NewFrameSource(), Options{Size: 0}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestCollector_FullAndShortWindows(t *testing.T) {
	c, _ := NewCollector(mocks.NewFrameSource(frames(7)...), Options{Size: 3})
	ctx := context.Background()

	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6}, {}}
	for i, w := range want {
		got, err := c.Next(ctx)
		if err != nil {
			t.Fatalf("window %d: unexpected error: %v", i, err)
		}
		if !equal(indices(got.Frames), w) {
			t.Errorf("window %d: expected %v, got %v", i, w, indices(got.Frames))
		}
	}
	if c.Consumed() != 7 {
		t.Errorf("expected 7 consumed, got %d", c.Consumed())
	}
}

func TestCollector_WindowIndices(t *testing.T) {
	c, _ := NewCollector(mocks.NewFrameSource(frames(4)...), Options{Size: 2})
	ctx := context.Background()

	for want := 0; want < 2; want++ {
		w, _ := c.Next(ctx)
		if w.Index != want {
			t.Errorf("expected window index %d, got %d", want, w.Index)
		}
	}
}

func TestCollector_FrameSkip(t *testing.T) {
	c, _ := NewCollector(mocks.NewFrameSource(frames(12)...), Options{Size: 10, Skip: 2})

	w, err := c.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 5, 8, 11}
	if !equal(indices(w.Frames), want) {
		t.Errorf("expected %v, got %v", want, indices(w.Frames))
	}
	if w.Consumed != 12 {
		t.Errorf("expected 12 consumed, got %d", w.Consumed)
	}
}

func TestCollector_KeyFramesOnly(t *testing.T) {
	fs := frames(6)
	for i := range fs {
		fs[i].Key = i%2 == 0
	}
	c, _ := NewCollector(mocks.NewFrameSource(fs...), Options{Size: 5, KeyFramesOnly: true})

	w, err := c.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 2, 4}
	if !equal(indices(w.Frames), want) {
		t.Errorf("expected %v, got %v", want, indices(w.Frames))
	}
}

func TestCollector_KeyFilterAppliesBeforeSkip(t *testing.T) {
	fs := frames(10)
	for i := range fs {
		fs[i].Key = i%2 == 0 // key frames: 0 2 4 6 8
	}
	c, _ := NewCollector(mocks.NewFrameSource(fs...), Options{Size: 10, Skip: 1, KeyFramesOnly: true})

	w, _ := c.Next(context.Background())
	want := []int{2, 6}
	if !equal(indices(w.Frames), want) {
		t.Errorf("expected %v, got %v", want, indices(w.Frames))
	}
}

func TestCollector_EmptySource(t *testing.T) {
	src := mocks.NewFrameSource()
	c, _ := NewCollector(src, Options{Size: 3})

	for i := 0; i < 2; i++ {
		w, err := c.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Empty() {
			t.Errorf("expected empty window, got %d frames", w.Len())
		}
	}
	if src.NextCalls != 1 {
		t.Errorf("expected the source to be read once, got %d", src.NextCalls)
	}
}

func TestCollector_DecodeErrorCarriesFrameIndex(t *testing.T) {
	boom := errors.New("corrupt packet")
	src := mocks.NewFrameSource(frames(5)...)
	src.FailAt = 3
	src.Err = boom
	c, _ := NewCollector(src, Options{Size: 10})

	_, err := c.Next(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if got := err.Error(); got != "read frame 3: corrupt packet" {
		t.Errorf("unexpected message %q", got)
	}
}
