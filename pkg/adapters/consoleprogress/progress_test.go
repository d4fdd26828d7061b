package consoleprogress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBar_KnownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf, "Decoding")

	bar.Start(10)
	bar.Add(4)
	bar.Add(6)
	bar.Finish()

	out := buf.String()
	if !strings.Contains(out, "Decoding") {
		t.Errorf("expected description in output, got %q", out)
	}
	if !strings.Contains(out, "10/10") {
		t.Errorf("expected final count in output, got %q", out)
	}
}

func TestBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf, "Decoding")

	bar.Start(-1)
	bar.Add(3)
	bar.Finish()

	if buf.Len() == 0 {
		t.Error("expected spinner output")
	}
}

func TestBar_AddBeforeStartIsIgnored(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf, "Decoding")
	bar.Add(5)
	bar.Finish()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNoop(t *testing.T) {
	p := NewNoop()
	p.Start(10)
	p.Add(1)
	p.Finish()
}
