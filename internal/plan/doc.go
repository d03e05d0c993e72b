// Package plan turns raw run parameters into a validated, immutable
// ExecutionPlan. It is the only place that prepares the output directory and
// the only place allowed to create the run's pseudo-random source.
package plan
