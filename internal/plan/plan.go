package plan

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/gridbench/internal/schedule"
)

const (
	// DefaultGridSize is used by callers when no grid size is supplied.
	DefaultGridSize = 256
	// DefaultStepCount is used by callers when no step count is supplied.
	DefaultStepCount = 1000
	// LogFileName is the name of the persisted log inside the output directory.
	LogFileName = "run.log"
)

// Input holds the raw parameters exactly as a form or command line supplies
// them. An empty Seed means the run is non-deterministic.
type Input struct {
	GridSize  string
	StepCount string
	OutputDir string
	Seed      string
}

// ExecutionPlan is the normalized, validated set of run parameters.
type ExecutionPlan struct {
	GridSize  int
	StepCount int
	OutputDir string
	Seed      *int64
}

// Resolve validates the input and ensures the output directory exists.
// Validation happens before any filesystem access, so an invalid input
// leaves no trace on disk.
func Resolve(in Input) (*ExecutionPlan, error) {
	grid, err := positiveInt("grid size", in.GridSize)
	if err != nil {
		return nil, err
	}
	if schedule.WorkUnitsOverflow(grid) {
		return nil, fmt.Errorf("%w: grid size %d is too large, its square overflows", ErrInvalidConfiguration, grid)
	}
	steps, err := positiveInt("step count", in.StepCount)
	if err != nil {
		return nil, err
	}

	out := strings.TrimSpace(in.OutputDir)
	if out == "" {
		return nil, fmt.Errorf("%w: output directory is required", ErrInvalidConfiguration)
	}

	var seed *int64
	if raw := strings.TrimSpace(in.Seed); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q is not an integer", ErrInvalidConfiguration, raw)
		}
		seed = &v
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output directory %s: %w", ErrOutputUnavailable, out, err)
	}

	return &ExecutionPlan{
		GridSize:  grid,
		StepCount: steps,
		OutputDir: out,
		Seed:      seed,
	}, nil
}

// LogPath returns the location of the persisted run log.
func (p *ExecutionPlan) LogPath() string {
	return filepath.Join(p.OutputDir, LogFileName)
}

// Seeded reports whether the plan carries a deterministic seed.
func (p *ExecutionPlan) Seeded() bool {
	return p.Seed != nil
}

// NewSource returns the pseudo-random source for the run. A seeded plan
// always yields the same sequence.
func (p *ExecutionPlan) NewSource() *rand.Rand {
	if p.Seed != nil {
		return rand.New(rand.NewPCG(uint64(*p.Seed), 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func positiveInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidConfiguration, field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidConfiguration, field, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfiguration, field, v)
	}
	return v, nil
}
