package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/lapse/pkg/ports"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleWriter(ports.LevelInfo, &out, &errOut)

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)
	l.Warn("careful")
	l.Error("broken %s", "pipe")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "shown 2") {
		t.Errorf("expected info on out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "careful") || !strings.Contains(errOut.String(), "broken pipe") {
		t.Errorf("expected warn and error on errOut, got %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	l := NewConsoleWriter(ports.LevelDebug, &out, &out).WithComponent("selection")

	l.Debug("window %d", 3)
	if got := strings.TrimSpace(out.String()); got != "[selection] window 3" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_PreformattedPercent(t *testing.T) {
	var out bytes.Buffer
	l := NewConsoleWriter(ports.LevelInfo, &out, &out)

	l.Info("100% done")
	if got := strings.TrimSpace(out.String()); got != "100% done" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	l := NewConsoleWriter(ports.LevelQuiet, &out, &out)
	l.Error("nothing")
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
