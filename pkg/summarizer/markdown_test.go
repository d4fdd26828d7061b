package summarizer

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Input: InputInfo{
			Path:          "drive.mp4",
			Codec:         "avc1",
			Width:         640,
			Height:        360,
			FPS:           30,
			FrameCount:    900,
			KeyFrameCount: 30,
		},
		Settings: Settings{
			Mode:          "mse",
			WindowSize:    25,
			FrameSkip:     0,
			KeyFramesOnly: true,
			Workers:       4,
		},
		Selection: SelectionInfo{
			Windows:        2,
			FramesDecoded:  30,
			FramesSelected: 2,
			ScoredWindows:  1,
			MeanDistance:   12.5,
			MaxDistance:    12.5,
			Elapsed:        1500 * time.Millisecond,
		},
		Video: VideoInfo{
			Path:       "lapse.webm",
			Codec:      "vp9",
			CRF:        32,
			Bitrate:    6144,
			FPS:        25,
			FrameCount: 2,
			FileSize:   1024 * 1024,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Timelapse Summary",
		"2024-01-15 10:30:00 UTC",
		"| File | drive.mp4 |",
		"| Resolution | 640x360 |",
		"| Frame Rate | 30.00 fps |",
		"| Frames | 900 |",
		"| Key Frames | 30 |",
		"| Mode | mse |",
		"| Key Frames Only | Yes |",
		"| Workers | 4 |",
		"| Frames Selected | 2 |",
		"| Mean Distance | 12.50 |",
		"| Elapsed | 1.50 s |",
		"| Codec | VP9 |",
		"| Bitrate | 6144 kbps |",
		"| Duration | 80 ms |",
		"| File Size | 1.00 MB |",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Unknowns(t *testing.T) {
	summary := sampleSummary()
	summary.Input.FrameCount = -1
	summary.Input.KeyFrameCount = -1
	summary.Settings.Workers = 0
	summary.Selection.ScoredWindows = 0
	summary.Video.Bitrate = 0

	result := NewMarkdownFormatter().Format(summary)

	checks := []string{
		"| Frames | Unknown |",
		"| Key Frames | Unknown |",
		"| Workers | Auto |",
		"| Mean Distance | N/A |",
		"| Max Distance | N/A |",
		"| Bitrate | Default |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Timelapse Summary": "タイムラプスのサマリー",
			"Window Size":       "ウィンドウサイズ",
			"Yes":               "はい",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	if !strings.Contains(result, "# タイムラプスのサマリー") {
		t.Error("expected translated title")
	}
	if !strings.Contains(result, "| ウィンドウサイズ | 25 |") {
		t.Error("expected translated 'Window Size'")
	}
	if !strings.Contains(result, "| Key Frames Only | はい |") {
		t.Error("expected translated 'Yes'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
