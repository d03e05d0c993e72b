package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/engine"
	"github.com/vk/gridbench/internal/plan"
)

// Request describes a batch of replicates for one grid size.
type Request struct {
	Root       string
	Grid       int
	Steps      int
	Seed       *int64
	Replicates int
}

// Job is one replicate run.
type Job struct {
	Name  string
	Dir   string
	Grid  int
	Steps int
	Seed  *int64
}

// Outcome is the result of running a Job.
type Outcome struct {
	Job     Job
	Summary engine.RunSummary
	Err     error
}

// Expand turns a request into jobs, numbering them after any replicates
// already present. Replicate k of a seeded request uses seed+k; an unseeded
// request stays unseeded.
func Expand(req Request) []Job {
	reps := max(1, req.Replicates)
	gridDir := GridDir(req.Root, req.Grid)
	next := NextRepIndex(gridDir)

	jobs := make([]Job, 0, reps)
	for k := 0; k < reps; k++ {
		name := RepName(next + k)
		job := Job{
			Name:  name,
			Dir:   filepath.Join(gridDir, name),
			Grid:  req.Grid,
			Steps: req.Steps,
		}
		if req.Seed != nil {
			s := *req.Seed + int64(k)
			job.Seed = &s
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// Runner executes jobs with a shared engine.
type Runner struct {
	engine *engine.Engine
}

// NewRunner returns a Runner backed by e.
func NewRunner(e *engine.Engine) *Runner {
	return &Runner{engine: e}
}

// Run executes jobs in order and returns one outcome per job. The returned
// error joins every replicate failure.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	logger := ctxlog.FromContext(ctx)
	outcomes := make([]Outcome, 0, len(jobs))
	var errs []error

	for i, job := range jobs {
		jobCtx := ctxlog.With(ctx, "rep", job.Name, "grid", job.Grid)
		logger.Info("Running replicate.", "rep", job.Name, "index", i+1, "total", len(jobs), "seed", seedString(job.Seed))

		summary, err := r.runJob(jobCtx, job)
		if err != nil {
			logger.Error("Replicate failed.", "rep", job.Name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
		outcomes = append(outcomes, Outcome{Job: job, Summary: summary, Err: err})
	}
	return outcomes, errors.Join(errs...)
}

func (r *Runner) runJob(ctx context.Context, job Job) (engine.RunSummary, error) {
	in := plan.Input{
		GridSize:  strconv.Itoa(job.Grid),
		StepCount: strconv.Itoa(job.Steps),
		OutputDir: job.Dir,
	}
	if job.Seed != nil {
		in.Seed = strconv.FormatInt(*job.Seed, 10)
	}
	p, err := plan.Resolve(in)
	if err != nil {
		return engine.RunSummary{}, err
	}
	if err := WriteArgs(job); err != nil {
		return engine.RunSummary{}, fmt.Errorf("%w: %w", plan.ErrOutputUnavailable, err)
	}
	return r.engine.Run(ctx, p)
}

// WriteArgs records the job's parameters in args.txt inside its directory.
func WriteArgs(job Job) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--grid %d\n", job.Grid)
	fmt.Fprintf(&b, "--steps %d\n", job.Steps)
	if job.Seed != nil {
		fmt.Fprintf(&b, "--seed %d\n", *job.Seed)
	}
	fmt.Fprintf(&b, "--out %q\n", job.Dir)
	return os.WriteFile(filepath.Join(job.Dir, ArgsFileName), []byte(b.String()), 0o644)
}

func seedString(seed *int64) string {
	if seed == nil {
		return "(none)"
	}
	return strconv.FormatInt(*seed, 10)
}
