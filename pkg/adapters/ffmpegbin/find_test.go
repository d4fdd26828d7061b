package ffmpegbin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func fakeLocator(existing map[string]bool, env map[string]string, onPath string) Locator {
	return Locator{
		Getenv: func(k string) string { return env[k] },
		LookPath: func(name string) (string, error) {
			if onPath != "" {
				return onPath, nil
			}
			return "", errors.New("not in PATH")
		},
		Stat: func(p string) (os.FileInfo, error) {
			if existing[p] {
				return nil, nil
			}
			return nil, os.ErrNotExist
		},
		GOOS: "linux",
	}
}

func TestTool_EnvVar(t *testing.T) {
	if FFmpeg.EnvVar() != "FFMPEG_PATH" {
		t.Errorf("unexpected env var %s", FFmpeg.EnvVar())
	}
	if FFprobe.EnvVar() != "FFPROBE_PATH" {
		t.Errorf("unexpected env var %s", FFprobe.EnvVar())
	}
}

func TestLocator_Find_CustomPathWins(t *testing.T) {
	l := fakeLocator(map[string]bool{"/opt/ff/ffmpeg": true}, map[string]string{"FFMPEG_PATH": "/env/ffmpeg"}, "/usr/bin/ffmpeg")

	got, err := l.Find(FFmpeg, "/opt/ff/ffmpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/opt/ff/ffmpeg" {
		t.Errorf("expected custom path, got %s", got)
	}
}

func TestLocator_Find_MissingCustomPath(t *testing.T) {
	l := fakeLocator(nil, nil, "/usr/bin/ffmpeg")
	if _, err := l.Find(FFmpeg, "/nowhere/ffmpeg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocator_Find_EnvBeforePath(t *testing.T) {
	l := fakeLocator(map[string]bool{"/env/ffprobe": true}, map[string]string{"FFPROBE_PATH": "/env/ffprobe"}, "/usr/bin/ffprobe")

	got, err := l.Find(FFprobe, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/env/ffprobe" {
		t.Errorf("expected env path, got %s", got)
	}
}

func TestLocator_Find_CommonLocation(t *testing.T) {
	want := filepath.Join("/snap/bin", "ffmpeg")
	l := fakeLocator(map[string]bool{want: true}, nil, "")

	got, err := l.Find(FFmpeg, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestLocator_Find_NotFound(t *testing.T) {
	l := fakeLocator(nil, nil, "")
	if _, err := l.Find(FFmpeg, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
