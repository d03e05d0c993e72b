package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     Input
		expectErr error
		grid      int
		steps     int
		seeded    bool
	}{
		{
			name:  "defaults as strings",
			input: Input{GridSize: "256", StepCount: "1000"},
			grid:  256,
			steps: 1000,
		},
		{
			name:   "whitespace is trimmed and seed parsed",
			input:  Input{GridSize: " 16 ", StepCount: "\t7", Seed: " 42 "},
			grid:   16,
			steps:  7,
			seeded: true,
		},
		{
			name:   "negative seed is valid",
			input:  Input{GridSize: "1", StepCount: "1", Seed: "-5"},
			grid:   1,
			steps:  1,
			seeded: true,
		},
		{
			name:      "error - missing grid",
			input:     Input{StepCount: "10"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:      "error - non-numeric steps",
			input:     Input{GridSize: "8", StepCount: "ten"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:      "error - grid whose square overflows",
			input:     Input{GridSize: "3037000500", StepCount: "10"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:  "largest grid and step count",
			input: Input{GridSize: "3037000499", StepCount: "9223372036854775807"},
			grid:  3037000499,
			steps: 9223372036854775807,
		},
		{
			name:      "error - zero grid",
			input:     Input{GridSize: "0", StepCount: "10"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:      "error - negative steps",
			input:     Input{GridSize: "8", StepCount: "-1"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:      "error - float grid",
			input:     Input{GridSize: "8.5", StepCount: "1"},
			expectErr: ErrInvalidConfiguration,
		},
		{
			name:      "error - bad seed",
			input:     Input{GridSize: "8", StepCount: "1", Seed: "abc"},
			expectErr: ErrInvalidConfiguration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := filepath.Join(t.TempDir(), "out")
			in := tc.input
			in.OutputDir = out

			p, err := Resolve(in)

			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				_, statErr := os.Stat(out)
				assert.True(t, os.IsNotExist(statErr), "invalid input must not touch the filesystem")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.grid, p.GridSize)
			assert.Equal(t, tc.steps, p.StepCount)
			assert.Equal(t, tc.seeded, p.Seeded())
			assert.Equal(t, filepath.Join(out, "run.log"), p.LogPath())
			assert.DirExists(t, out)
		})
	}
}

func TestResolve_MissingOutputDir(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Input{GridSize: "8", StepCount: "8", OutputDir: "  "})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestResolve_ExistingDirectoryIsNotAnError(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	_, err := Resolve(Input{GridSize: "8", StepCount: "8", OutputDir: out})
	require.NoError(t, err)
	_, err = Resolve(Input{GridSize: "8", StepCount: "8", OutputDir: out})
	require.NoError(t, err)
}

func TestResolve_OutputUnavailable(t *testing.T) {
	t.Parallel()

	// A regular file where a directory component is expected.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := Resolve(Input{GridSize: "8", StepCount: "8", OutputDir: filepath.Join(blocker, "out")})
	require.ErrorIs(t, err, ErrOutputUnavailable)
}

func TestNewSource_SeededIsDeterministic(t *testing.T) {
	t.Parallel()

	seed := int64(12345)
	p := &ExecutionPlan{GridSize: 1, StepCount: 1, Seed: &seed}

	a, b := p.NewSource(), p.NewSource()
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
