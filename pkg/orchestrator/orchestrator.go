// Package orchestrator drives a timelapse run: it pulls windows of frames
// from the source, selects one frame per window and hands it to the sink.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/lapse/pkg/pipeline"
	"github.com/user/lapse/pkg/ports"
	"github.com/user/lapse/pkg/stages/selection"
	"github.com/user/lapse/pkg/stages/window"
)

// Config contains the run configuration for the orchestrator.
type Config struct {
	// Window extraction
	WindowSize    int
	FrameSkip     int
	KeyFramesOnly bool

	// Progress
	TotalFrames int // Estimated source frames, -1 when unknown

	// Output
	OutputPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		WindowSize:    25,
		FrameSkip:     0,
		KeyFramesOnly: true,
		TotalFrames:   -1,
	}
}

// Orchestrator coordinates the window, selection and sink steps.
type Orchestrator struct {
	selectStage pipeline.Stage[pipeline.Window, pipeline.Selection]
	sink        ports.FrameSink
	debug       ports.DebugSink
	progress    ports.Progress
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	selectStage pipeline.Stage[pipeline.Window, pipeline.Selection],
	sink ports.FrameSink,
	debug ports.DebugSink,
	progress ports.Progress,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		selectStage: selectStage,
		sink:        sink,
		debug:       debug,
		progress:    progress,
		logger:      logger,
	}
}

// Run consumes the source until it is exhausted and finalizes the sink.
// Finalize is called exactly once on success, including for empty sources.
// On error the sink is left unfinalized; the caller owns Close.
func (o *Orchestrator) Run(ctx context.Context, source ports.FrameSource, config Config) (RunResult, error) {
	started := time.Now()
	var result RunResult

	collector, err := window.NewCollector(source, window.Options{
		Size:          config.WindowSize,
		Skip:          config.FrameSkip,
		KeyFramesOnly: config.KeyFramesOnly,
	})
	if err != nil {
		return result, fmt.Errorf("window collector: %w", err)
	}

	o.logger.Info(l10n.F("Selecting frames: window size %d, frame skip %d", config.WindowSize, config.FrameSkip))
	o.progress.Start(int64(config.TotalFrames))
	defer o.progress.Finish()

	var records []pipeline.SelectionRecord
	for {
		if err := ctx.Err(); err != nil {
			return o.finish(result, started), fmt.Errorf("window %d: %w", result.Windows, err)
		}

		w, err := collector.Next(ctx)
		if err != nil {
			return o.finish(result, started), fmt.Errorf("window %d: %w", result.Windows, err)
		}
		result.FramesDecoded += w.Consumed
		o.progress.Add(w.Consumed)
		if w.Empty() {
			break
		}

		sel, err := o.selectStage.Execute(ctx, w)
		if errors.Is(err, selection.ErrEmptyInput) {
			break
		}
		if err != nil {
			return o.finish(result, started), fmt.Errorf("select window %d (%d frames): %w", w.Index, w.Len(), err)
		}

		if err := o.sink.Accept(sel.Frame); err != nil {
			return o.finish(result, started), fmt.Errorf("encode frame %d of window %d: %w", sel.Frame.Index, w.Index, err)
		}

		result.Windows++
		result.FramesSelected++
		if sel.Scored {
			result.addDistance(sel.Distance)
		}

		records = append(records, sel.Record(w.Index))
		o.saveDebugFrame(w.Index, sel)
	}

	if err := o.sink.Finalize(); err != nil {
		o.logger.Error(l10n.F("Failed to finalize output: %s", err))
		return o.finish(result, started), fmt.Errorf("finalize output: %w", err)
	}

	o.saveDebugSelections(records)
	result.Selections = records
	result = o.finish(result, started)

	o.logger.Info(l10n.F("Selected %d of %d frames in %d windows", result.FramesSelected, result.FramesDecoded, result.Windows))
	return result, nil
}

func (o *Orchestrator) finish(result RunResult, started time.Time) RunResult {
	result.Elapsed = time.Since(started)
	return result
}

func (o *Orchestrator) saveDebugFrame(windowIndex int, sel pipeline.Selection) {
	if !o.debug.Enabled() {
		return
	}
	caption := fmt.Sprintf("window %d  frame %d  t=%dms", windowIndex, sel.Frame.Index, sel.Frame.TimestampMs)
	if sel.Scored {
		caption += fmt.Sprintf("  distance %.2f", sel.Distance)
	}
	if err := o.debug.SaveSelectedFrame(windowIndex, sel.Frame.ToRGBA(), caption); err != nil {
		o.logger.Warn(l10n.F("Failed to save debug frame: %s", err))
	}
}

func (o *Orchestrator) saveDebugSelections(records []pipeline.SelectionRecord) {
	if !o.debug.Enabled() {
		return
	}
	if records == nil {
		records = []pipeline.SelectionRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		o.logger.Warn(l10n.F("Failed to save selections: %s", err))
		return
	}
	if err := o.debug.SaveSelectionsJSON(data); err != nil {
		o.logger.Warn(l10n.F("Failed to save selections: %s", err))
	}
}

// RunResult contains the results of a run for the status line and summary.
type RunResult struct {
	Windows        int
	FramesDecoded  int
	FramesSelected int

	// Distance statistics over scored windows
	ScoredWindows int
	MeanDistance  float64
	MaxDistance   float64

	Selections []pipeline.SelectionRecord
	Elapsed    time.Duration
}

func (r *RunResult) addDistance(d float64) {
	r.ScoredWindows++
	r.MeanDistance += (d - r.MeanDistance) / float64(r.ScoredWindows)
	if d > r.MaxDistance {
		r.MaxDistance = d
	}
}
