// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/lapse/pkg/orchestrator"
	"github.com/user/lapse/pkg/ports"
	"github.com/user/lapse/pkg/scoring"
)

// ErrInvalid is returned by Validate for settings that cannot run.
var ErrInvalid = errors.New("config: invalid setting")

// Config represents the full configuration for lapse.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Selection
	WindowSize    int    `yaml:"window_size"`
	FrameSkip     int    `yaml:"frame_skip"`
	KeyFramesOnly bool   `yaml:"key_frames_only"`
	Mode          string `yaml:"mode"`
	Workers       int    `yaml:"workers"` // 0 = one per CPU

	// Logging
	Verbosity int `yaml:"verbosity"`

	// External tools, empty = search FFMPEG_PATH/FFPROBE_PATH, PATH and common locations
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	Encoding EncodingConfig `yaml:"encoding"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Markdown run summary path, empty = none
	Summary string `yaml:"summary"`
}

// EncodingConfig represents output video settings.
type EncodingConfig struct {
	Codec   string  `yaml:"codec"`
	CRF     int     `yaml:"crf"`
	Bitrate int     `yaml:"bitrate"` // kbps
	FPS     float64 `yaml:"fps"`     // 0 = source frame rate
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		WindowSize:    25,
		FrameSkip:     0,
		KeyFramesOnly: true,
		Mode:          string(scoring.ModeMSE),

		Encoding: EncodingConfig{
			Codec:   "vp9",
			CRF:     32,
			Bitrate: 6144,
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the settings that would otherwise fail mid-stream.
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalid, c.WindowSize)
	}
	if c.FrameSkip < 0 {
		return fmt.Errorf("%w: frame skip must not be negative, got %d", ErrInvalid, c.FrameSkip)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if _, err := c.ScoringMode(); err != nil {
		return err
	}
	switch strings.ToLower(c.Encoding.Codec) {
	case "", "vp9", "h264":
	default:
		return fmt.Errorf("%w: unsupported codec %q", ErrInvalid, c.Encoding.Codec)
	}
	if c.Encoding.CRF < 0 || c.Encoding.CRF > 63 {
		return fmt.Errorf("%w: crf must be within 0-63, got %d", ErrInvalid, c.Encoding.CRF)
	}
	if c.Encoding.Bitrate < 0 {
		return fmt.Errorf("%w: bitrate must not be negative, got %d", ErrInvalid, c.Encoding.Bitrate)
	}
	if c.Encoding.FPS < 0 {
		return fmt.Errorf("%w: fps must not be negative, got %g", ErrInvalid, c.Encoding.FPS)
	}
	return nil
}

// ScoringMode parses Mode and rejects modes without a scorer.
func (c Config) ScoringMode() (scoring.Mode, error) {
	mode, err := scoring.ParseMode(c.Mode)
	if err != nil {
		return "", err
	}
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

// EncoderOptions converts the encoding section, falling back to the
// source frame rate when no output rate is configured.
func (c Config) EncoderOptions(sourceFPS float64) ports.EncoderOptions {
	fps := c.Encoding.FPS
	if fps <= 0 {
		fps = sourceFPS
	}
	return ports.EncoderOptions{
		Codec:   strings.ToLower(c.Encoding.Codec),
		Quality: c.Encoding.CRF,
		Bitrate: c.Encoding.Bitrate,
		FPS:     fps,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(totalFrames int) orchestrator.Config {
	return orchestrator.Config{
		WindowSize:    c.WindowSize,
		FrameSkip:     c.FrameSkip,
		KeyFramesOnly: c.KeyFramesOnly,
		TotalFrames:   totalFrames,
		OutputPath:    c.Output,
	}
}
