package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkUnits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		grid     int
		expected int
	}{
		{grid: 1, expected: 1},
		{grid: 2, expected: 1},
		{grid: 3, expected: 1},
		{grid: 4, expected: 2},
		{grid: 10, expected: 12},
		{grid: 256, expected: 8192},
		{grid: 512, expected: 32768},
		{grid: 3037000499, expected: 3037000499 * 3037000499 / 8},
		{grid: 3037000500, expected: math.MaxInt / 8},
		{grid: 4294967296, expected: math.MaxInt / 8},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, WorkUnits(tc.grid), "grid=%d", tc.grid)
	}
}

func TestWorkUnitsOverflow(t *testing.T) {
	t.Parallel()

	assert.False(t, WorkUnitsOverflow(1))
	assert.False(t, WorkUnitsOverflow(3037000499))
	assert.True(t, WorkUnitsOverflow(3037000500))
	assert.True(t, WorkUnitsOverflow(math.MaxInt))
}

func TestTicks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		steps    int
		expected []int
	}{
		{name: "reference run", steps: 1000, expected: []int{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}},
		{name: "single step", steps: 1, expected: []int{0}},
		{name: "below ten clamps stride to one", steps: 5, expected: []int{0, 1, 2, 3, 4}},
		{name: "uneven division", steps: 25, expected: []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}},
		{name: "just above a multiple", steps: 101, expected: []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{name: "largest step count", steps: math.MaxInt, expected: func() []int {
			stride := math.MaxInt / 10
			out := make([]int, 0, 11)
			for k := 0; k <= 10; k++ {
				out = append(out, k*stride)
			}
			return out
		}()},
		{name: "one short of largest", steps: math.MaxInt - 1, expected: func() []int {
			stride := (math.MaxInt - 1) / 10
			out := make([]int, 0, 11)
			for k := 0; k <= 10; k++ {
				out = append(out, k*stride)
			}
			return out
		}()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ticks(tc.steps)
			assert.Equal(t, tc.expected, got)
			assert.Len(t, got, TickCount(tc.steps))
		})
	}
}

func TestTicks_Properties(t *testing.T) {
	t.Parallel()

	for steps := 1; steps <= 2500; steps++ {
		got := Ticks(steps)
		stride := Stride(steps)

		require.NotEmpty(t, got)
		require.Equal(t, 0, got[0], "steps=%d", steps)
		require.Len(t, got, (steps+stride-1)/stride, "steps=%d", steps)
		for i := 1; i < len(got); i++ {
			require.Equal(t, stride, got[i]-got[i-1], "steps=%d", steps)
		}
		require.Less(t, got[len(got)-1], steps)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	s := New(256, 1000)
	assert.Equal(t, 8192, s.WorkUnits)
	assert.Len(t, s.Steps, 10)

	s = New(1, 1)
	assert.Equal(t, 1, s.WorkUnits)
	assert.Equal(t, []int{0}, s.Steps)
}
