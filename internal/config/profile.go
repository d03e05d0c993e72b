package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProfileNotFound is returned by Select when no profile matches.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named, reusable set of run parameters. Zero values mean
// "not set" so that defaults and flags can fill them in.
type Profile struct {
	Name        string
	Description string
	Grid        int
	Steps       int
	Replicates  int
	Seed        *int64
	Out         string
	// Source is the file the profile was read from.
	Source string
}

// Select picks a profile by name. An empty name is accepted only when there
// is exactly one profile.
func Select(profiles []*Profile, name string) (*Profile, error) {
	if name == "" {
		switch len(profiles) {
		case 0:
			return nil, fmt.Errorf("%w: no profiles loaded", ErrProfileNotFound)
		case 1:
			return profiles[0], nil
		default:
			return nil, fmt.Errorf("several profiles loaded (%s), choose one by name", strings.Join(Names(profiles), ", "))
		}
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Names returns the sorted profile names.
func Names(profiles []*Profile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Validate reports obviously broken profile values. Missing values are fine.
func (p *Profile) Validate() error {
	var errs []error
	if p.Grid < 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %d", p.Grid))
	}
	if p.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", p.Steps))
	}
	if p.Replicates < 0 {
		errs = append(errs, fmt.Errorf("replicates must be positive, got %d", p.Replicates))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("profile %q (%s): %w", p.Name, p.Source, err)
	}
	return nil
}
