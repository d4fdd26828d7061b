// Package main provides the CLI entry point for lapse.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/lapse/pkg/config"
	"github.com/user/lapse/pkg/scoring"
)

var version = "dev"

// Flag categories
const (
	catSelection = "Selection"
	catVideo     = "Video and Quality"
	catTools     = "External Tools"
	catDebug     = "Debug"
	catLogging   = "Logging"
)

func main() {
	app := newApp(runAction)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command definition around action.
func newApp(action cli.ActionFunc) *cli.App {
	var verbosity int

	modes := make([]string, 0, len(scoring.Modes()))
	for _, m := range scoring.Modes() {
		if m.Supported() {
			modes = append(modes, m.String())
		}
	}

	// -v counts verbosity, so --version has no short alias.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: l10n.T("Print the version"),
	}

	return &cli.App{
		Name:                   "lapse",
		Usage:                  l10n.T("Condense a video into a timelapse of its most consistent frames"),
		UsageText:              "lapse [options] INPUT OUTPUT",
		Description:            l10n.T("lapse splits the input into windows of consecutive frames and keeps, from each window, the frame closest to the previously kept one."),
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file; flags override its values"),
			},

			// Selection
			&cli.IntFlag{
				Name:     "window-size",
				Aliases:  []string{"w"},
				Value:    25,
				Usage:    l10n.T("Frames per window (min: 1)"),
				Category: l10n.T(catSelection),
			},
			&cli.IntFlag{
				Name:     "frame-skip",
				Aliases:  []string{"s"},
				Usage:    l10n.T("Eligible frames discarded before each admitted frame"),
				Category: l10n.T(catSelection),
			},
			&cli.BoolFlag{
				Name:     "key-frames-only",
				Value:    true,
				Usage:    l10n.T("Only consider key frames (use --key-frames-only=false for all frames)"),
				Category: l10n.T(catSelection),
			},
			&cli.StringFlag{
				Name:     "mode",
				Aliases:  []string{"m"},
				Value:    string(scoring.ModeMSE),
				Usage:    l10n.F("Comparison mode (%s)", strings.Join(modes, ", ")),
				Category: l10n.T(catSelection),
			},
			&cli.IntFlag{
				Name:     "workers",
				Aliases:  []string{"j"},
				Usage:    l10n.T("Parallel scoring workers (0 = one per CPU)"),
				Category: l10n.T(catSelection),
			},

			// Video and quality
			&cli.StringFlag{
				Name:     "codec",
				Value:    "vp9",
				Usage:    l10n.T("Output codec (vp9, h264)"),
				Category: l10n.T(catVideo),
			},
			&cli.IntFlag{
				Name:     "crf",
				Aliases:  []string{"q"},
				Value:    32,
				Usage:    l10n.T("Video CRF value (0-63, lower is better)"),
				Category: l10n.T(catVideo),
			},
			&cli.IntFlag{
				Name:     "bitrate",
				Value:    6144,
				Usage:    l10n.T("Target bitrate in kbps (0 = codec default)"),
				Category: l10n.T(catVideo),
			},
			&cli.Float64Flag{
				Name:     "fps",
				Usage:    l10n.T("Output frame rate (default: source frame rate)"),
				Category: l10n.T(catVideo),
			},

			// External tools
			&cli.StringFlag{
				Name:     "ffmpeg",
				Usage:    l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH, then PATH)"),
				Category: l10n.T(catTools),
			},
			&cli.StringFlag{
				Name:     "ffprobe",
				Usage:    l10n.T("Path to ffprobe (falls back to FFPROBE_PATH, then PATH)"),
				Category: l10n.T(catTools),
			},

			// Debug
			&cli.BoolFlag{
				Name:     "debug",
				Aliases:  []string{"d"},
				Usage:    l10n.T("Save every selected frame and selections.json"),
				Category: l10n.T(catDebug),
			},
			&cli.StringFlag{
				Name:     "debug-dir",
				Value:    "./debug",
				Usage:    l10n.T("Directory for debug output"),
				Category: l10n.T(catDebug),
			},
			&cli.StringFlag{
				Name:     "summary",
				Usage:    l10n.T("Write a Markdown run summary to this path"),
				Category: l10n.T(catDebug),
			},

			// Logging
			&cli.BoolFlag{
				Name:     "verbose",
				Aliases:  []string{"v"},
				Count:    &verbosity,
				Usage:    l10n.T("Increase verbosity (-v debug, -vvv per-candidate distances)"),
				Category: l10n.T(catLogging),
			},
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T(catLogging),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T(catLogging),
			},
		},
		Action: action,
	}
}

// buildConfig starts from the config file (or defaults) and applies the
// flags that were set explicitly, then the positional paths.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("window-size") {
		cfg.WindowSize = c.Int("window-size")
	}
	if c.IsSet("frame-skip") {
		cfg.FrameSkip = c.Int("frame-skip")
	}
	if c.IsSet("key-frames-only") {
		cfg.KeyFramesOnly = c.Bool("key-frames-only")
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("codec") {
		cfg.Encoding.Codec = c.String("codec")
	}
	if c.IsSet("crf") {
		cfg.Encoding.CRF = c.Int("crf")
	}
	if c.IsSet("bitrate") {
		cfg.Encoding.Bitrate = c.Int("bitrate")
	}
	if c.IsSet("fps") {
		cfg.Encoding.FPS = c.Float64("fps")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("ffprobe") {
		cfg.FFprobePath = c.String("ffprobe")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("verbose") {
		cfg.Verbosity = c.Count("verbose")
	}

	if c.NArg() > 2 {
		return cfg, fmt.Errorf("%w: expected INPUT OUTPUT, got %d arguments", config.ErrInvalid, c.NArg())
	}
	if c.NArg() > 0 {
		cfg.Input = c.Args().Get(0)
	}
	if c.NArg() > 1 {
		cfg.Output = c.Args().Get(1)
	}
	if cfg.Input == "" || cfg.Output == "" {
		return cfg, fmt.Errorf("%w: input and output paths are required", config.ErrInvalid)
	}

	return cfg, cfg.Validate()
}
