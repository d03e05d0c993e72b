package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/gridbench/internal/aggregate"
	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/engine"
	"github.com/vk/gridbench/internal/plan"
	"github.com/vk/gridbench/internal/publish"
	"github.com/vk/gridbench/internal/sweep"
)

// Run executes the configured mode. When a healthcheck port is set the
// health server runs alongside the workload and stops when it finishes.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	if err := a.LoadProfile(ctx); err != nil {
		return err
	}

	var workload func(context.Context) error
	switch a.config.Mode {
	case ModeSweep:
		workload = a.runSweep
	case ModeAggregate:
		workload = a.runAggregate
	default:
		workload = a.runSingle
	}

	if a.config.HealthcheckPort > 0 {
		return a.runWithHealthcheck(ctx, a.config.HealthcheckPort, workload)
	}
	return workload(ctx)
}

func (a *App) planInput() plan.Input {
	return plan.Input{
		GridSize:  a.config.Grid,
		StepCount: a.config.Steps,
		OutputDir: a.config.Out,
		Seed:      a.config.Seed,
	}
}

// newEngine builds an engine streaming to stdout, connecting the publisher
// when one is configured. The returned func releases it.
func (a *App) newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	opts := []engine.Option{engine.WithStream(a.stdout)}
	release := func() {}

	if a.config.PublishURL != "" {
		pub, err := publish.Dial(ctx, a.config.PublishURL, a.config.PublishNamespace)
		if err != nil {
			return nil, nil, fmt.Errorf("connect publisher: %w", err)
		}
		opts = append(opts, engine.WithObserver(pub))
		release = func() { _ = pub.Close() }
	}
	return engine.New(opts...), release, nil
}

func (a *App) runSingle(ctx context.Context) error {
	p, err := plan.Resolve(a.planInput())
	if err != nil {
		return err
	}

	eng, release, err := a.newEngine(ctx)
	if err != nil {
		return err
	}
	defer release()

	a.logger.Info("🚀 Starting run.", "grid", p.GridSize, "steps", p.StepCount, "out", p.OutputDir)
	summary, err := eng.Run(ctx, p)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	a.logger.Info("🏁 Run finished.", "ticks", summary.Ticks, "elapsed_s", summary.ElapsedSeconds())
	return nil
}

// runSweep runs the replicates into a fresh run directory under -out and
// aggregates whatever succeeded.
func (a *App) runSweep(ctx context.Context) error {
	p, err := plan.Resolve(a.planInput())
	if err != nil {
		return err
	}

	runDir, err := sweep.NewRunDir(p.OutputDir, a.now())
	if err != nil {
		return fmt.Errorf("%w: %w", plan.ErrOutputUnavailable, err)
	}

	eng, release, err := a.newEngine(ctx)
	if err != nil {
		return err
	}
	defer release()

	jobs := sweep.Expand(sweep.Request{
		Root:       runDir,
		Grid:       p.GridSize,
		Steps:      p.StepCount,
		Seed:       p.Seed,
		Replicates: a.config.Replicates,
	})
	a.logger.Info("🚀 Starting sweep.", "run_dir", runDir, "replicates", len(jobs))

	outcomes, runErr := sweep.NewRunner(eng).Run(ctx, jobs)
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	a.logger.Info("🏁 Sweep finished.", "ok", len(outcomes)-failed, "failed", failed)

	report, aggErr := aggregate.Write(ctx, runDir)
	if aggErr == nil {
		printReport(a.stdout, report)
	}
	return errors.Join(runErr, aggErr)
}

func (a *App) runAggregate(ctx context.Context) error {
	report, err := aggregate.Write(ctx, a.config.Out)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	printReport(a.stdout, report)
	return nil
}

func printReport(w io.Writer, r *aggregate.Report) {
	for _, row := range r.Summary {
		fmt.Fprintf(w, "grid=%d n=%d %s\n", row.Grid, row.N, row.Pretty)
	}
	fmt.Fprintf(w, "summary: %s\n", r.TSV)
}
