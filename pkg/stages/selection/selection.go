// Package selection implements the window selection stage.
// It keeps the summary of the last selected frame and picks, from each
// window, the frame closest to it.
package selection

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/user/lapse/pkg/pipeline"
	"github.com/user/lapse/pkg/ports"
	"github.com/user/lapse/pkg/scoring"
)

// ErrEmptyInput is returned when a window holds no frames.
// The driver treats it as the end of the stream.
var ErrEmptyInput = errors.New("selection: empty window")

// Scorer summarizes frames and measures distances between summaries.
type Scorer interface {
	Summarize(frame ports.Frame) (scoring.Summary, error)
	Distance(candidate, reference scoring.Summary) (float64, error)
	TracksReference() bool
}

// Options configures a Stage.
type Options struct {
	// Workers bounds concurrent candidate scoring. Zero means runtime.NumCPU().
	Workers int
	// Trace logs the distance of every candidate.
	Trace bool
}

// Stage picks one frame per window.
// It is stateful and must not be shared between concurrent runs.
type Stage struct {
	scorer  Scorer
	logger  ports.Logger
	workers int
	trace   bool

	reference *scoring.Summary
}

// NewStage creates a new selection stage with no reference.
func NewStage(scorer Scorer, logger ports.Logger, opts Options) *Stage {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Stage{
		scorer:  scorer,
		logger:  logger.WithComponent("selection"),
		workers: workers,
		trace:   opts.Trace,
	}
}

// Seeded reports whether a reference summary is held.
func (s *Stage) Seeded() bool {
	return s.reference != nil
}

// Reset drops the reference so the next window starts unseeded.
func (s *Stage) Reset() {
	s.reference = nil
}

// Execute implements pipeline.Stage.
func (s *Stage) Execute(ctx context.Context, window pipeline.Window) (pipeline.Selection, error) {
	return s.PickBest(ctx, window)
}

// PickBest selects the frame of the window closest to the reference.
// Without a reference, or in noop mode, the first frame is selected.
// On error the reference is left unchanged.
func (s *Stage) PickBest(ctx context.Context, window pipeline.Window) (pipeline.Selection, error) {
	if window.Empty() {
		return pipeline.Selection{}, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return pipeline.Selection{}, err
	}

	if !s.scorer.TracksReference() {
		return s.first(window), nil
	}
	if s.reference == nil {
		return s.seed(window)
	}
	return s.pickClosest(ctx, window)
}

func (s *Stage) first(window pipeline.Window) pipeline.Selection {
	return pipeline.Selection{
		Frame:      window.Frames[0],
		Position:   0,
		Candidates: window.Len(),
	}
}

func (s *Stage) seed(window pipeline.Window) (pipeline.Selection, error) {
	sel := s.first(window)
	summary, err := s.scorer.Summarize(sel.Frame)
	if err != nil {
		return pipeline.Selection{}, fmt.Errorf("seed reference from frame %d: %w", sel.Frame.Index, err)
	}
	s.reference = &summary
	s.logger.Debug("Window %d: seeded reference with frame %d", window.Index, sel.Frame.Index)
	return sel, nil
}

type scored struct {
	summary  scoring.Summary
	distance float64
}

func (s *Stage) pickClosest(ctx context.Context, window pipeline.Window) (pipeline.Selection, error) {
	reference := *s.reference
	results := make([]scored, window.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, frame := range window.Frames {
		i, frame := i, frame
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := s.scorer.Summarize(frame)
			if err != nil {
				return fmt.Errorf("score frame %d: %w", frame.Index, err)
			}
			d, err := s.scorer.Distance(summary, reference)
			if err != nil {
				return fmt.Errorf("score frame %d: %w", frame.Index, err)
			}
			results[i] = scored{summary: summary, distance: d}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pipeline.Selection{}, err
	}

	// Strict comparison keeps the first of equal distances.
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].distance < results[best].distance {
			best = i
		}
	}

	if s.trace {
		for i, r := range results {
			s.logger.Debug("Window %d candidate %d (frame %d): distance %.4f", window.Index, i, window.Frames[i].Index, r.distance)
		}
	}

	winner := results[best]
	s.reference = &winner.summary
	s.logger.Debug("Window %d: selected frame %d at distance %.4f", window.Index, window.Frames[best].Index, winner.distance)

	return pipeline.Selection{
		Frame:      window.Frames[best],
		Position:   best,
		Candidates: window.Len(),
		Distance:   winner.distance,
		Scored:     true,
	}, nil
}

var _ pipeline.Stage[pipeline.Window, pipeline.Selection] = (*Stage)(nil)
