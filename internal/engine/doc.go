// Package engine drives a single run: it walks the tick schedule strictly in
// order, performs the grid-scaled kernel work for every tick, and reports
// progress and the final timing metric through a runlog.Session.
//
// A run moves NotStarted → Running(tick 0) → … → Completed. There is no
// retry and no cancellation; any failure aborts the run and leaves the log
// truncated at the last persisted line, which callers treat as a failed run.
package engine
