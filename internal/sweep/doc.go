// Package sweep lays out and executes replicate runs:
//
//	<run root>/grid_<g>/rep_<NNN>/{args.txt,run.log}
//
// Replicates execute one after another; a failed replicate is recorded and
// the sweep moves on to the next one.
package sweep
