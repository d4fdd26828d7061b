package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/lapse/pkg/mocks"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_FullChain(t *testing.T) {
	summary := NewBuilder().
		WithInput(InputInfo{Path: "in.mp4", FrameCount: -1}).
		WithSettings(Settings{Mode: "meanhash", WindowSize: 10}).
		WithSelection(SelectionInfo{Windows: 3, FramesSelected: 3}).
		WithVideo(VideoInfo{Path: "out.webm", FrameCount: 3}).
		Build()

	if summary.Input.Path != "in.mp4" {
		t.Errorf("expected input in.mp4, got %s", summary.Input.Path)
	}
	if summary.Settings.Mode != "meanhash" || summary.Settings.WindowSize != 10 {
		t.Errorf("unexpected settings: %+v", summary.Settings)
	}
	if summary.Selection.Windows != 3 {
		t.Errorf("expected 3 windows, got %d", summary.Selection.Windows)
	}
	if summary.Video.FrameCount != 3 {
		t.Errorf("expected 3 output frames, got %d", summary.Video.FrameCount)
	}
}

func TestVideoInfo_DurationMs(t *testing.T) {
	tests := []struct {
		video VideoInfo
		want  int
	}{
		{VideoInfo{FrameCount: 50, FPS: 25}, 2000},
		{VideoInfo{FrameCount: 3, FPS: 30}, 100},
		{VideoInfo{FrameCount: 10, FPS: 0}, 0},
	}

	for _, tt := range tests {
		if got := tt.video.DurationMs(); got != tt.want {
			t.Errorf("expected %d ms, got %d", tt.want, got)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	formatter := FormatFunc(func(s *Summary) string {
		return "mode=" + s.Settings.Mode
	})

	w := NewWriter(formatter, fs)
	summary := NewBuilder().WithSettings(Settings{Mode: "mse"}).Build()

	if err := w.Write("reports/run.md", summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.GetFile("reports/run.md")
	if !ok {
		t.Fatal("expected summary file to be written")
	}
	if !strings.Contains(string(data), "mode=mse") {
		t.Errorf("expected formatted content, got %q", data)
	}
}
