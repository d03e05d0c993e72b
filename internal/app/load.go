package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/gridbench/internal/config"
	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/plan"
)

// LoadProfile reads the configured profile files and merges the selected
// profile into the app's config. It is a no-op without a profile path.
func (a *App) LoadProfile(ctx context.Context) error {
	if a.config.ProfilePath == "" {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading profiles...", "path", a.config.ProfilePath)

	profiles, err := a.loader.Load(ctx, a.config.ProfilePath)
	if err != nil {
		return fmt.Errorf("%w: load profiles: %w", plan.ErrInvalidConfiguration, err)
	}
	logger.Debug("Profiles loaded.", "names", config.Names(profiles))

	p, err := config.Select(profiles, a.config.ProfileName)
	if err != nil {
		return fmt.Errorf("%w: %w", plan.ErrInvalidConfiguration, err)
	}

	mergeProfile(a.config, p)
	logger.Info("Profile applied.", "name", p.Name, "source", p.Source, "description", p.Description)
	return nil
}

// mergeProfile copies the profile's non-zero values into cfg unless the
// corresponding flag was set explicitly.
func mergeProfile(cfg *Config, p *config.Profile) {
	unset := func(name string) bool { return !cfg.Explicit[name] }

	if p.Grid > 0 && unset(FlagGrid) {
		cfg.Grid = strconv.Itoa(p.Grid)
	}
	if p.Steps > 0 && unset(FlagSteps) {
		cfg.Steps = strconv.Itoa(p.Steps)
	}
	if p.Seed != nil && unset(FlagSeed) {
		cfg.Seed = strconv.FormatInt(*p.Seed, 10)
	}
	if p.Out != "" && unset(FlagOut) {
		cfg.Out = p.Out
	}
	if p.Replicates > 0 && unset(FlagReplicates) {
		cfg.Replicates = p.Replicates
	}
}
