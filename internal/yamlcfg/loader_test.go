package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridbench/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_EquationCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "equations_index.yaml", "equations:\n  - poisson\n")
	path := writeFile(t, dir, "poisson.yaml", `id: poisson
name: Newtonian Poisson (placeholder)
domain: gravity
parameters:
  - { key: gridSize, label: "Grid Size", type: int, default: 256 }
  - { key: timeSteps, label: "Time Steps", type: int, default: 1000 }
  - { key: seed, type: int, default: 7 }
  - { key: outDir, type: string }
  - { key: density, type: float, default: 1.5 }
outputs: [ "phi.h5", "run.log" ]
`)

	profiles, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	seed := int64(7)
	want := []*config.Profile{{
		Name:        "poisson",
		Description: "Newtonian Poisson (placeholder)",
		Grid:        256,
		Steps:       1000,
		Seed:        &seed,
		Source:      path,
	}}
	if diff := cmp.Diff(want, profiles); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_ProfilesListAndMultiDoc(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "runs.yml", `profiles:
  - name: small
    grid: 8
    steps: 10
    replicates: 2
---
id: gw_wave
description: toy
parameters:
  - { key: gridSize, default: 512 }
`)

	profiles, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	want := []*config.Profile{
		{Name: "small", Grid: 8, Steps: 10, Replicates: 2, Source: path},
		{Name: "gw_wave", Description: "toy", Grid: 512, Source: path},
	}
	if diff := cmp.Diff(want, profiles); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "id: [unterminated", "failed to decode"},
		{"bad default", "id: p\nparameters:\n  - { key: gridSize, default: large }\n", "parameter gridSize"},
		{"unnamed entry", "profiles:\n  - grid: 4\n", "without a name"},
		{"negative", "profiles:\n  - { name: p, steps: -3 }\n", "steps must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeFile(t, dir, "p.yaml", tc.content)

			_, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
