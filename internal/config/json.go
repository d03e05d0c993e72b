package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/fsutil"
)

// jsonProfile is the flat JSON shape of a profile.
type jsonProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Grid        int    `json:"grid"`
	Steps       int    `json:"steps"`
	Seed        *int64 `json:"seed"`
	Replicates  int    `json:"replicates"`
	Out         string `json:"out"`
}

// JSONLoader implements Loader for .json files holding either one profile
// object or an array of them.
type JSONLoader struct{}

// NewJSONLoader creates a new JSON profile loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

func (l *JSONLoader) Load(ctx context.Context, paths ...string) ([]*Profile, error) {
	files, err := fsutil.FindFiles(paths, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to discover JSON files: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Discovered JSON files.", "count", len(files))

	var profiles []*Profile
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON file %s: %w", file, err)
		}

		var entries []jsonProfile
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &entries)
		} else {
			var single jsonProfile
			err = json.Unmarshal(trimmed, &single)
			entries = append(entries, single)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON file %s: %w", file, err)
		}

		for _, e := range entries {
			if e.Name == "" {
				return nil, fmt.Errorf("%s: profile without a name", file)
			}
			p := &Profile{
				Name:        e.Name,
				Description: e.Description,
				Grid:        e.Grid,
				Steps:       e.Steps,
				Seed:        e.Seed,
				Replicates:  e.Replicates,
				Out:         e.Out,
				Source:      file,
			}
			if err := p.Validate(); err != nil {
				return nil, err
			}
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}
