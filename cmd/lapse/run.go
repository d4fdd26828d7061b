package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/lapse/pkg/adapters/consoleprogress"
	"github.com/user/lapse/pkg/adapters/ffmpegbin"
	"github.com/user/lapse/pkg/adapters/ffmpegsink"
	"github.com/user/lapse/pkg/adapters/ffmpegsource"
	"github.com/user/lapse/pkg/adapters/filesink"
	"github.com/user/lapse/pkg/adapters/ggrenderer"
	"github.com/user/lapse/pkg/adapters/imagehash"
	"github.com/user/lapse/pkg/adapters/logger"
	"github.com/user/lapse/pkg/adapters/nullsink"
	"github.com/user/lapse/pkg/adapters/osfilesystem"
	"github.com/user/lapse/pkg/adapters/videoprobe"
	"github.com/user/lapse/pkg/config"
	"github.com/user/lapse/pkg/orchestrator"
	"github.com/user/lapse/pkg/ports"
	"github.com/user/lapse/pkg/scoring"
	"github.com/user/lapse/pkg/stages/selection"
	"github.com/user/lapse/pkg/summarizer"
)

// Exit codes
const (
	exitFailure = 1
	exitUsage   = 2
)

func runAction(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	quiet := c.Bool("quiet")
	log := newLogger(cfg, c.String("log-level"), quiet)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, cfg, log, newProgress(quiet))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn(l10n.T("Interrupted, shutting down..."))
		}
		log.Error(l10n.F("Failed: %s", err))
		return cli.Exit("", exitFailure)
	}

	if result.Selection.FramesSelected == 0 {
		log.Warn(l10n.T("No frames were selected; no output written"))
		return nil
	}
	log.Info(l10n.F("Output saved to %s", cfg.Output))
	fmt.Println(l10n.F("%d frames from %d windows written to %s in %.1fs",
		result.Selection.FramesSelected, result.Selection.Windows, cfg.Output, result.Selection.Elapsed.Seconds()))
	return nil
}

func newLogger(cfg config.Config, level string, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	if level != "" {
		return logger.NewConsole(ports.ParseLogLevel(level))
	}
	return logger.NewConsole(ports.LevelForVerbosity(cfg.Verbosity))
}

// newProgress draws a bar only when stderr is a terminal.
func newProgress(quiet bool) ports.Progress {
	fd := os.Stderr.Fd()
	if quiet || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return consoleprogress.NewNoop()
	}
	return consoleprogress.New(os.Stderr, l10n.T("Selecting"))
}

// run wires the adapters for one input and drives the pipeline.
func run(ctx context.Context, cfg config.Config, log ports.Logger, progress ports.Progress) (*summarizer.Summary, error) {
	ffmpegPath, err := ffmpegbin.Find(ffmpegbin.FFmpeg, cfg.FFmpegPath)
	if err != nil {
		return nil, err
	}
	// ffprobe is optional; MP4 inputs are probed from their sample tables.
	ffprobePath, err := ffmpegbin.Find(ffmpegbin.FFprobe, cfg.FFprobePath)
	if err != nil {
		log.Debug("ffprobe unavailable: %v", err)
		ffprobePath = ""
	}

	log.Info(l10n.F("Probing %s", cfg.Input))
	info, err := videoprobe.New(ffprobePath, log).Probe(ctx, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("probe input: %w", err)
	}
	total := info.FrameCount
	if cfg.KeyFramesOnly {
		total = info.KeyFrameCount
	}
	log.Info(l10n.F("Input: %dx%d, %.2f fps, %s frames", info.Width, info.Height, info.FPS, frameCount(total)))
	if total < 0 {
		log.Warn(l10n.T("Frame count unknown, progress is indeterminate"))
	}

	scorer, err := newScorer(cfg)
	if err != nil {
		return nil, err
	}
	selectStage := selection.NewStage(scorer, log, selection.Options{
		Workers: cfg.Workers,
		Trace:   cfg.Verbosity >= 3,
	})

	source, err := ffmpegsource.New(ffmpegsource.Options{
		FFmpegPath:    ffmpegPath,
		Input:         cfg.Input,
		Width:         info.Width,
		Height:        info.Height,
		FPS:           info.FPS,
		KeyFramesOnly: cfg.KeyFramesOnly,
	})
	if err != nil {
		return nil, err
	}
	defer source.Close()

	sink, err := ffmpegsink.New(ffmpegsink.Options{
		FFmpegPath: ffmpegPath,
		Output:     cfg.Output,
		Width:      info.Width,
		Height:     info.Height,
		Encoder:    cfg.EncoderOptions(info.FPS),
	})
	if err != nil {
		return nil, err
	}
	defer sink.Close()

	fs := osfilesystem.New()
	var debug ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		debug = filesink.New(cfg.DebugDir, fs, ggrenderer.New())
	} else {
		debug = nullsink.New()
	}

	orch := orchestrator.New(selectStage, sink, debug, progress, log)
	result, err := orch.Run(ctx, source, cfg.ToOrchestratorConfig(total))
	if err != nil {
		return nil, err
	}

	enc := sink.Options().Encoder
	var size int64
	if result.FramesSelected > 0 {
		size, _ = fs.Size(cfg.Output)
	}
	summary := summarizer.NewBuilder().
		WithInput(summarizer.InputInfo{
			Path:          cfg.Input,
			Codec:         info.Codec,
			Width:         info.Width,
			Height:        info.Height,
			FPS:           info.FPS,
			FrameCount:    info.FrameCount,
			KeyFrameCount: info.KeyFrameCount,
		}).
		WithSettings(summarizer.Settings{
			Mode:          scorer.Mode().String(),
			WindowSize:    cfg.WindowSize,
			FrameSkip:     cfg.FrameSkip,
			KeyFramesOnly: cfg.KeyFramesOnly,
			Workers:       cfg.Workers,
		}).
		WithSelection(summarizer.SelectionInfo{
			Windows:        result.Windows,
			FramesDecoded:  result.FramesDecoded,
			FramesSelected: result.FramesSelected,
			ScoredWindows:  result.ScoredWindows,
			MeanDistance:   result.MeanDistance,
			MaxDistance:    result.MaxDistance,
			Elapsed:        result.Elapsed,
		}).
		WithVideo(summarizer.VideoInfo{
			Path:       cfg.Output,
			Codec:      enc.Codec,
			CRF:        enc.Quality,
			Bitrate:    enc.Bitrate,
			FPS:        enc.FPS,
			FrameCount: sink.FrameCount(),
			FileSize:   size,
		}).
		Build()

	if cfg.Summary != "" {
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(formatter, fs).Write(cfg.Summary, summary); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cfg.Summary))
		}
	}

	return summary, nil
}

// newScorer builds the scorer, with a perceptual hasher for hash modes.
func newScorer(cfg config.Config) (*scoring.Scorer, error) {
	mode, err := cfg.ScoringMode()
	if err != nil {
		return nil, err
	}
	var hasher ports.Hasher
	if alg, ok := mode.HashAlgorithm(); ok {
		h, err := imagehash.New(alg)
		if err != nil {
			return nil, err
		}
		hasher = h
	}
	return scoring.New(mode, hasher)
}

func frameCount(n int) string {
	if n < 0 {
		return "?"
	}
	return fmt.Sprintf("%d", n)
}
