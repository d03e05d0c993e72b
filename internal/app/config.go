package app

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects what App.Run does.
type Mode string

const (
	ModeRun       Mode = "run"
	ModeSweep     Mode = "sweep"
	ModeAggregate Mode = "aggregate"
)

// Names of the settings a profile may fill in. The CLI records which of
// these were given explicitly so a profile never overrides them.
const (
	FlagGrid       = "grid"
	FlagSteps      = "steps"
	FlagSeed       = "seed"
	FlagOut        = "out"
	FlagReplicates = "replicates"
)

// Config holds all the necessary configuration for an App instance to run.
// Grid, Steps and Seed stay in their raw textual form until a plan is
// resolved, so every mode reports bad values the same way.
type Config struct {
	Mode  Mode
	Grid  string
	Steps string
	Seed  string
	Out   string

	Replicates int

	ProfilePath string
	ProfileName string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	PublishURL       string
	PublishNamespace string

	// Explicit is the set of Flag* names the user supplied.
	Explicit map[string]bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeRun
	}
	switch cfg.Mode {
	case ModeRun, ModeSweep, ModeAggregate:
	default:
		return nil, fmt.Errorf("unknown mode %q: must be run, sweep or aggregate", cfg.Mode)
	}

	var errs []error
	if strings.TrimSpace(cfg.Out) == "" && cfg.ProfilePath == "" {
		errs = append(errs, errors.New("-out is required"))
	}
	if cfg.Mode == ModeAggregate && strings.TrimSpace(cfg.Out) == "" {
		errs = append(errs, errors.New("aggregate needs -out pointing at a run directory"))
	}
	if cfg.Replicates < 0 {
		errs = append(errs, fmt.Errorf("replicates must not be negative, got %d", cfg.Replicates))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("healthcheck-port %d is out of range", cfg.HealthcheckPort))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.PublishNamespace == "" {
		cfg.PublishNamespace = "/"
	}
	if cfg.Explicit == nil {
		cfg.Explicit = map[string]bool{}
	}
	return &cfg, nil
}
