// Package cli turns the gridbench command line into an app.Config. The first
// argument may name a subcommand (run, sweep or aggregate; run when absent).
// Flags the user sets explicitly are recorded so that a loaded profile only
// fills in the rest. Usage errors surface as ExitError with code 2.
package cli
