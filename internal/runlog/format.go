package runlog

import "fmt"

const (
	elapsedPrefix = "elapsed_s="
	metricPrefix  = "METRIC value="
)

// FormatProgress renders one tick record.
func FormatProgress(step, gridSize, workUnits int) string {
	return fmt.Sprintf("[step %d] grid=%d work=%d", step, gridSize, workUnits)
}

// FormatElapsed renders the human-readable timing line.
func FormatElapsed(seconds float64) string {
	return fmt.Sprintf("%s%.6f", elapsedPrefix, seconds)
}

// FormatMetric renders the grep-able timing line.
func FormatMetric(seconds float64) string {
	return fmt.Sprintf("%s%.6f", metricPrefix, seconds)
}
