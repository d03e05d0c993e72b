package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridbench/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want *app.Config
	}{
		{
			name: "run is the default mode",
			args: []string{"-out", "runs/a"},
			want: &app.Config{
				Mode: app.ModeRun, Grid: "256", Steps: "1000", Out: "runs/a", Replicates: 1,
				LogFormat: "text", LogLevel: "info", PublishNamespace: "/",
				Explicit: map[string]bool{app.FlagOut: true},
			},
		},
		{
			name: "sweep with every flag",
			args: []string{
				"sweep", "-grid", "64", "-steps", "50", "-seed", "7", "-out", "root",
				"-replicates", "5", "-profile", "p.hcl", "-profile-name", "poisson",
				"-log-format", "JSON", "-log-level", "DEBUG", "-healthcheck-port", "8080",
				"-publish-url", "http://localhost:3000", "-publish-namespace", "/runs",
			},
			want: &app.Config{
				Mode: app.ModeSweep, Grid: "64", Steps: "50", Seed: "7", Out: "root",
				Replicates: 5, ProfilePath: "p.hcl", ProfileName: "poisson",
				LogFormat: "json", LogLevel: "debug", HealthcheckPort: 8080,
				PublishURL: "http://localhost:3000", PublishNamespace: "/runs",
				Explicit: map[string]bool{
					app.FlagGrid: true, app.FlagSteps: true, app.FlagSeed: true,
					app.FlagOut: true, app.FlagReplicates: true,
				},
			},
		},
		{
			name: "aggregate takes the run directory positionally",
			args: []string{"aggregate", "runs/run_20250101_000000"},
			want: &app.Config{
				Mode: app.ModeAggregate, Grid: "256", Steps: "1000", Out: "runs/run_20250101_000000",
				Replicates: 1, LogFormat: "text", LogLevel: "info", PublishNamespace: "/",
				Explicit: map[string]bool{app.FlagOut: true},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, shouldExit)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_HelpAndNoArgs(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}, {"sweep", "-help"}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
		{"missing out", []string{"-grid", "8"}, "-out is required"},
		{"bad log format", []string{"-out", "x", "-log-format", "xml"}, "invalid log-format"},
		{"bad log level", []string{"-out", "x", "-log-level", "loud"}, "invalid log-level"},
		{"stray argument", []string{"-out", "x", "extra"}, "unexpected argument"},
		{"bad replicates", []string{"sweep", "-out", "x", "-replicates", "-2"}, "replicates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
