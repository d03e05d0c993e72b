package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/plan"
	"github.com/vk/gridbench/internal/runlog"
	"github.com/vk/gridbench/internal/schedule"
)

// Engine executes plans. It holds no per-run state, so one Engine may run
// several plans one after another.
type Engine struct {
	stream   io.Writer
	observer Observer
	now      func() time.Time
}

// New returns an Engine with the given options applied.
func New(opts ...Option) *Engine {
	e := &Engine{
		stream: io.Discard,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Run executes p to completion. The log session stays open for the whole
// run and is closed on every return path; lines flushed before a failure
// remain on disk.
func (e *Engine) Run(ctx context.Context, p *plan.ExecutionPlan) (summary RunSummary, err error) {
	logger := ctxlog.FromContext(ctx).With("grid", p.GridSize, "steps", p.StepCount)

	start := e.now()
	sched := schedule.New(p.GridSize, p.StepCount)
	phase := p.NewSource().Float64() * kernelScale

	session, err := runlog.Create(p.LogPath(), e.stream)
	if err != nil {
		return RunSummary{}, fmt.Errorf("%w: open %s: %w", plan.ErrOutputUnavailable, p.LogPath(), err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", session.Path(), cerr)
		}
	}()

	logger.Debug("Run started.", "ticks", len(sched.Steps), "work_units", sched.WorkUnits, "seeded", p.Seeded())
	e.emit(Event{Kind: EventStarted})

	var carry float64
	for _, step := range sched.Steps {
		s, err := tick(step, sched.WorkUnits, phase)
		if err != nil {
			logger.Error("Tick computation failed.", "step", step, "error", err)
			return RunSummary{}, fmt.Errorf("step %d: %w", step, err)
		}
		carry += s

		rec := ProgressRecord{
			Step:      step,
			GridSize:  p.GridSize,
			WorkUnits: sched.WorkUnits,
			Line:      runlog.FormatProgress(step, p.GridSize, sched.WorkUnits),
		}
		if err := session.WriteLine(rec.Line); err != nil {
			return RunSummary{}, fmt.Errorf("step %d: %w", step, err)
		}
		logger.Debug("Tick complete.", "step", step)
		e.emit(Event{Kind: EventProgress, Record: &rec})
	}

	elapsed := e.now().Sub(start)
	summary = RunSummary{
		Elapsed:     elapsed,
		Ticks:       len(sched.Steps),
		LogPath:     session.Path(),
		ElapsedLine: runlog.FormatElapsed(elapsed.Seconds()),
		MetricLine:  runlog.FormatMetric(elapsed.Seconds()),
		carry:       carry,
	}
	for _, line := range []string{summary.ElapsedLine, summary.MetricLine} {
		if err := session.WriteLine(line); err != nil {
			return RunSummary{}, fmt.Errorf("write summary: %w", err)
		}
	}

	logger.Info("Run complete.", "elapsed_s", summary.ElapsedSeconds(), "log", summary.LogPath)
	e.emit(Event{Kind: EventFinished, Summary: &summary})
	return summary, nil
}

func (e *Engine) emit(ev Event) {
	if e.observer != nil {
		e.observer.HandleEvent(ev)
	}
}
