package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gridbench/internal/config"
	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and returns the profiles in
// discovery order. A later profile with the same name replaces an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to discover HCL files: %w", err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(processEnv())

	var profiles []*config.Profile
	index := make(map[string]int)
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Profiles {
			p, err := translateProfile(block, file)
			if err != nil {
				return nil, err
			}
			if i, dup := index[p.Name]; dup {
				logger.Warn("Duplicate profile found, overwriting.", "name", p.Name, "path", file)
				profiles[i] = p
				continue
			}
			index[p.Name] = len(profiles)
			profiles = append(profiles, p)
		}
	}

	logger.Debug("HCL loading complete.", "profiles", len(profiles))
	return profiles, nil
}

// translateProfile converts the HCL schema into the agnostic model.
func translateProfile(b *profileBlock, source string) (*config.Profile, error) {
	p := &config.Profile{
		Name:        b.Name,
		Description: b.Description,
		Out:         b.Out,
		Source:      source,
	}

	fields := []struct {
		name string
		val  cty.Value
		dst  *int
	}{
		{"grid", b.Grid, &p.Grid},
		{"steps", b.Steps, &p.Steps},
		{"replicates", b.Replicates, &p.Replicates},
	}
	for _, f := range fields {
		v, ok, err := decodeInt(f.val)
		if err != nil {
			return nil, fmt.Errorf("profile %q (%s): %s: %w", b.Name, source, f.name, err)
		}
		if ok {
			*f.dst = int(v)
		}
	}

	seed, ok, err := decodeInt(b.Seed)
	if err != nil {
		return nil, fmt.Errorf("profile %q (%s): seed: %w", b.Name, source, err)
	}
	if ok {
		p.Seed = &seed
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// decodeInt converts an optional attribute to an integer. Absent, null and
// empty-string values report ok=false.
func decodeInt(val cty.Value) (int64, bool, error) {
	if val.IsNull() {
		return 0, false, nil
	}
	if !val.IsKnown() {
		return 0, false, fmt.Errorf("value is not known")
	}
	if val.Type() == cty.String && val.AsString() == "" {
		return 0, false, nil
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, false, fmt.Errorf("cannot convert %s to number: %w", val.Type().FriendlyName(), err)
	}
	if !num.AsBigFloat().IsInt() {
		return 0, false, fmt.Errorf("%s is not a whole number", num.AsBigFloat().Text('g', -1))
	}

	var out int64
	if err := gocty.FromCtyValue(num, &out); err != nil {
		return 0, false, err
	}
	return out, true, nil
}
