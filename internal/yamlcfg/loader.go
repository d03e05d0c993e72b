package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/gridbench/internal/config"
	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Loader implements config.Loader for YAML files.
type Loader struct{}

// NewLoader creates a new YAML profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml and .yml file under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to discover YAML files: %w", err)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	var profiles []*config.Profile
	for _, file := range files {
		found, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			logger.Debug("YAML file holds no profiles, skipping.", "path", file)
		}
		profiles = append(profiles, found...)
	}
	return profiles, nil
}

func loadFile(path string) ([]*config.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML file %s: %w", path, err)
	}
	defer f.Close()

	var out []*config.Profile
	dec := yaml.NewDecoder(f)
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}

		found, err := doc.profiles(path)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// profiles translates one document into the agnostic model.
func (d *document) profiles(source string) ([]*config.Profile, error) {
	var out []*config.Profile

	for _, e := range d.Profiles {
		p := &config.Profile{
			Name:        e.Name,
			Description: e.Description,
			Grid:        e.Grid,
			Steps:       e.Steps,
			Seed:        e.Seed,
			Replicates:  e.Replicates,
			Out:         e.Out,
			Source:      source,
		}
		if p.Name == "" {
			return nil, fmt.Errorf("%s: profile entry without a name", source)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if d.ID == "" && len(d.Parameters) == 0 {
		return out, nil
	}

	p, err := d.equation(source)
	if err != nil {
		return nil, err
	}
	return append(out, p), nil
}

// equation builds a profile from catalog parameter defaults. Parameters
// without a default, or with keys this harness does not use, are ignored.
func (d *document) equation(source string) (*config.Profile, error) {
	p := &config.Profile{
		Name:        d.ID,
		Description: d.Description,
		Source:      source,
	}
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%s: equation without id or name", source)
	}
	if p.Description == "" {
		p.Description = d.Name
	}

	for _, param := range d.Parameters {
		if param.Default.IsZero() || param.Default.Tag == "!!null" {
			continue
		}

		var err error
		switch param.Key {
		case keyGridSize:
			err = param.Default.Decode(&p.Grid)
		case keyTimeSteps:
			err = param.Default.Decode(&p.Steps)
		case keyReplicates:
			err = param.Default.Decode(&p.Replicates)
		case keySeed:
			var seed int64
			if err = param.Default.Decode(&seed); err == nil {
				p.Seed = &seed
			}
		case keyOutDir:
			err = param.Default.Decode(&p.Out)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: equation %q: parameter %s: %w", source, p.Name, param.Key, err)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
