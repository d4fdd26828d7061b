// Package ffmpegbin locates the ffmpeg and ffprobe executables.
package ffmpegbin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when an executable cannot be located.
var ErrNotFound = errors.New("ffmpegbin: executable not found")

// Tool names a binary of the ffmpeg suite.
type Tool string

const (
	FFmpeg  Tool = "ffmpeg"
	FFprobe Tool = "ffprobe"
)

// EnvVar returns the environment variable that overrides the tool's path.
func (t Tool) EnvVar() string {
	return strings.ToUpper(string(t)) + "_PATH"
}

func (t Tool) executable(goos string) string {
	if goos == "windows" {
		return string(t) + ".exe"
	}
	return string(t)
}

// Locator resolves tool paths. The zero value searches the real system.
type Locator struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
	Stat     func(string) (os.FileInfo, error)
	GOOS     string
}

// Find searches for the tool.
// Priority: 1) custom path, 2) <TOOL>_PATH env, 3) PATH, 4) common locations
func Find(tool Tool, custom string) (string, error) {
	return Locator{}.Find(tool, custom)
}

// Find searches for the tool using the locator's hooks.
func (l Locator) Find(tool Tool, custom string) (string, error) {
	l = l.withDefaults()

	if custom != "" {
		if _, err := l.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom %s path %s", ErrNotFound, tool, custom)
	}

	if envPath := l.Getenv(tool.EnvVar()); envPath != "" {
		if _, err := l.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s", ErrNotFound, tool.EnvVar(), envPath)
	}

	if path, err := l.LookPath(tool.executable(l.GOOS)); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs(l.GOOS) {
		p := filepath.Join(dir, tool.executable(l.GOOS))
		if _, err := l.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, tool)
}

func (l Locator) withDefaults() Locator {
	if l.Getenv == nil {
		l.Getenv = os.Getenv
	}
	if l.LookPath == nil {
		l.LookPath = exec.LookPath
	}
	if l.Stat == nil {
		l.Stat = os.Stat
	}
	if l.GOOS == "" {
		l.GOOS = runtime.GOOS
	}
	return l
}

func commonDirs(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
}
