package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridbench/internal/cli"
	"github.com/vk/gridbench/internal/plan"
)

func TestRun_ReferenceRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outDir := filepath.Join(t.TempDir(), "poisson")
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"-grid", "256", "-steps", "1000", "-out", outDir})

	// --- Assert ---
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(outDir, plan.LogFileName))
	require.NoError(t, err)
	require.Equal(t, string(data), out.String(), "stdout carries exactly the run.log lines")

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 12)
	require.Equal(t, "[step 0] grid=256 work=8192", lines[0])
	require.Equal(t, "[step 900] grid=256 work=8192", lines[9])
	require.Contains(t, logs.String(), "Run finished")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidConfigurationIsRuntimeError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	outDir := filepath.Join(t.TempDir(), "never")

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-grid", "0", "-out", outDir})

	// --- Assert ---
	require.ErrorIs(t, err, plan.ErrInvalidConfiguration)
	var exitErr *cli.ExitError
	require.False(t, errors.As(err, &exitErr), "exit code 1, not a usage error")
	require.NoDirExists(t, outDir)
}

func TestRun_BrokenProfile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A profile file with a syntax error must surface as a startup error.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte("profile \"p\" {\n  grid = \n"), 0o600))

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-profile", filePath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}
