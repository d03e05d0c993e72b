// Package schedule partitions a run into progress ticks and sizes the work
// performed at each tick.
package schedule

import "math"

// ticksPerRun is the nominal number of progress checkpoints in a run.
const ticksPerRun = 10

// Schedule is the ordered list of tick step indices and the constant amount
// of work performed at each of them.
type Schedule struct {
	Steps     []int
	WorkUnits int
}

// New builds the schedule for a grid size and step count.
func New(gridSize, stepCount int) Schedule {
	return Schedule{
		Steps:     Ticks(stepCount),
		WorkUnits: WorkUnits(gridSize),
	}
}

// Stride is the distance between two consecutive ticks. It never drops
// below one, so the tick sequence always terminates.
func Stride(stepCount int) int {
	return max(1, stepCount/ticksPerRun)
}

// Ticks returns 0, stride, 2*stride, ... while the value stays below
// stepCount. Step 0 is always present.
func Ticks(stepCount int) []int {
	stride := Stride(stepCount)
	steps := make([]int, 0, TickCount(stepCount))
	for i := 0; i < stepCount; i += stride {
		steps = append(steps, i)
		if i > stepCount-stride {
			break
		}
	}
	if len(steps) == 0 {
		steps = append(steps, 0)
	}
	return steps
}

// TickCount is ceil(stepCount / Stride(stepCount)), with a floor of one.
func TickCount(stepCount int) int {
	if stepCount <= 0 {
		return 1
	}
	stride := Stride(stepCount)
	return (stepCount-1)/stride + 1
}

// WorkUnits is the number of kernel iterations per tick: grid²/8, at least one.
// A grid whose square does not fit in an int saturates at math.MaxInt/8.
func WorkUnits(gridSize int) int {
	if WorkUnitsOverflow(gridSize) {
		return math.MaxInt / 8
	}
	return max(1, gridSize*gridSize/8)
}

// WorkUnitsOverflow reports whether gridSize² exceeds math.MaxInt.
func WorkUnitsOverflow(gridSize int) bool {
	if gridSize < 0 {
		gridSize = -gridSize
	}
	return gridSize > 0 && gridSize > math.MaxInt/gridSize
}
