package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/gridbench/internal/app"
	"github.com/vk/gridbench/internal/plan"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// profileFlags are the flags a profile may fill in when they are not given.
var profileFlags = map[string]string{
	"grid":       app.FlagGrid,
	"steps":      app.FlagSteps,
	"seed":       app.FlagSeed,
	"out":        app.FlagOut,
	"replicates": app.FlagReplicates,
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	mode := app.ModeRun
	if len(args) > 0 {
		switch app.Mode(args[0]) {
		case app.ModeRun, app.ModeSweep, app.ModeAggregate:
			mode = app.Mode(args[0])
			args = args[1:]
		}
	}

	flagSet := flag.NewFlagSet("gridbench "+string(mode), flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridbench - grid-scaled workload harness.

Usage:
  gridbench [run]      [options]   single run into -out, writing run.log
  gridbench sweep      [options]   replicates into -out/run_<stamp>/grid_<g>/rep_<NNN>
  gridbench aggregate  [options] [RUN_DIR]
                                   per-grid statistics for a sweep run directory

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", fmt.Sprint(plan.DefaultGridSize), "Grid size, a positive integer.")
	stepsFlag := flagSet.String("steps", fmt.Sprint(plan.DefaultStepCount), "Number of time steps, a positive integer.")
	outFlag := flagSet.String("out", "", "Output directory (run), runs root (sweep) or run directory (aggregate).")
	seedFlag := flagSet.String("seed", "", "Optional integer seed for a reproducible run.")
	replicatesFlag := flagSet.Int("replicates", 1, "Number of replicates per sweep.")
	profileFlag := flagSet.String("profile", "", "Path to a profile file or directory (.hcl, .yaml, .yml, .json).")
	profileNameFlag := flagSet.String("profile-name", "", "Profile to select when several are loaded.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", "", "Optional socket.io dashboard URL that receives live progress.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace used with -publish-url.")

	if len(args) == 0 && mode == app.ModeRun {
		slog.Debug("No arguments provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "mode", mode)

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		if name, ok := profileFlags[f.Name]; ok {
			explicit[name] = true
		}
	})

	out := *outFlag
	if flagSet.NArg() > 0 {
		if mode != app.ModeAggregate || out != "" {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
		}
		out = flagSet.Arg(0)
		explicit[app.FlagOut] = true
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Mode:             mode,
		Grid:             *gridFlag,
		Steps:            *stepsFlag,
		Seed:             *seedFlag,
		Out:              out,
		Replicates:       *replicatesFlag,
		ProfilePath:      *profileFlag,
		ProfileName:      *profileNameFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HealthcheckPort:  *healthPortFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		Explicit:         explicit,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
