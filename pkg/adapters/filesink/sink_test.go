package filesink

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/user/lapse/pkg/mocks"
	"github.com/user/lapse/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveSelectionsJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`[{"window": 0}]`)
	if err := sink.SaveSelectionsJSON(data); err != nil {
		t.Fatalf("SaveSelectionsJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "selections.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveSelectedFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	var canvas *mocks.Canvas
	var canvasW, canvasH int
	renderer := &mocks.Renderer{
		CreateCanvasFunc: func(w, h int, bg color.Color) ports.Canvas {
			canvasW, canvasH = w, h
			canvas = &mocks.Canvas{}
			return canvas
		},
		EncodePNGFunc: func(img image.Image) ([]byte, error) {
			return []byte("png"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	if err := sink.SaveSelectedFrame(7, img, "window 7  frame 180"); err != nil {
		t.Fatalf("SaveSelectedFrame failed: %v", err)
	}

	saved, ok := fs.GetFile(filepath.Join(testBaseDir, "frames", "window-00007.png"))
	if !ok || string(saved) != "png" {
		t.Errorf("expected encoded frame to be saved, got %q", saved)
	}
	if canvasW != 320 || canvasH != 240+captionBand {
		t.Errorf("expected 320x%d canvas, got %dx%d", 240+captionBand, canvasW, canvasH)
	}
	if len(canvas.Texts) != 1 || canvas.Texts[0] != "window 7  frame 180" {
		t.Errorf("expected caption to be drawn, got %v", canvas.Texts)
	}
	if size := canvas.Styles[0].FontSize; size != float64(captionBand)*0.6 {
		t.Errorf("expected short caption at font size %v, got %v", float64(captionBand)*0.6, size)
	}
	want := image.Rect(0, 240, 320, 240+captionBand)
	if len(canvas.Rects) != 1 || canvas.Rects[0] != want {
		t.Errorf("expected caption strip %v, got %v", want, canvas.Rects)
	}
}

func TestSink_SaveSelectedFrame_DownscalesWideFrames(t *testing.T) {
	var resizedW, resizedH int
	var canvasW, canvasH int
	renderer := &mocks.Renderer{
		ResizeImageFunc: func(img image.Image, w, h int) image.Image {
			resizedW, resizedH = w, h
			return image.NewRGBA(image.Rect(0, 0, w, h))
		},
		CreateCanvasFunc: func(w, h int, bg color.Color) ports.Canvas {
			canvasW, canvasH = w, h
			return &mocks.Canvas{}
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	img := image.NewRGBA(image.Rect(0, 0, 2560, 1440))
	if err := sink.SaveSelectedFrame(0, img, "window 0"); err != nil {
		t.Fatalf("SaveSelectedFrame failed: %v", err)
	}

	if resizedW != maxFrameWidth || resizedH != 720 {
		t.Errorf("expected resize to %dx720, got %dx%d", maxFrameWidth, resizedW, resizedH)
	}
	// 720/12 = 60 exceeds the minimum band.
	if canvasW != maxFrameWidth || canvasH != 780 {
		t.Errorf("expected %dx780 canvas, got %dx%d", maxFrameWidth, canvasW, canvasH)
	}
}

func TestSink_SaveSelectedFrame_KeepsNarrowFrames(t *testing.T) {
	renderer := &mocks.Renderer{
		ResizeImageFunc: func(img image.Image, w, h int) image.Image {
			t.Errorf("unexpected resize to %dx%d", w, h)
			return img
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	img := image.NewRGBA(image.Rect(0, 0, maxFrameWidth, 720))
	if err := sink.SaveSelectedFrame(0, img, "window 0"); err != nil {
		t.Fatalf("SaveSelectedFrame failed: %v", err)
	}
}

func TestSink_SaveSelectedFrame_FitsLongCaption(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		caption string
		minimum bool
	}{
		{"shrunk to width", 160, "window 12345  frame 987654  distance 0.001234", false},
		{"clamped to minimum", 40, "window 12345  frame 987654  distance 0.001234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var canvas *mocks.Canvas
			renderer := &mocks.Renderer{
				CreateCanvasFunc: func(w, h int, bg color.Color) ports.Canvas {
					canvas = &mocks.Canvas{}
					return canvas
				},
			}
			sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

			img := image.NewRGBA(image.Rect(0, 0, tt.width, 120))
			if err := sink.SaveSelectedFrame(0, img, tt.caption); err != nil {
				t.Fatalf("SaveSelectedFrame failed: %v", err)
			}

			style := canvas.Styles[0]
			if tt.minimum {
				if style.FontSize != minCaptionFont {
					t.Errorf("expected font size %v, got %v", minCaptionFont, style.FontSize)
				}
				return
			}
			w, _ := canvas.MeasureText(tt.caption, style)
			if avail := float64(tt.width - 2*captionMargin); w > avail+1e-9 {
				t.Errorf("expected caption within %v, got %v", avail, w)
			}
			if style.FontSize >= float64(captionBand)*0.6 {
				t.Errorf("expected font to shrink, got %v", style.FontSize)
			}
		})
	}
}

func TestSink_SaveSelectedFrame_EncodeError(t *testing.T) {
	boom := errors.New("boom")
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(image.Image) ([]byte, error) {
			return nil, boom
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveSelectedFrame(0, image.NewRGBA(image.Rect(0, 0, 4, 4)), "x"); !errors.Is(err, boom) {
		t.Errorf("expected encode error, got %v", err)
	}
}
