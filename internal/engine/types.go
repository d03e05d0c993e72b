package engine

import "time"

// ProgressRecord is the content of one tick line.
type ProgressRecord struct {
	Step      int
	GridSize  int
	WorkUnits int
	// Line is the exact text persisted for this record, without newline.
	Line string
}

// RunSummary is produced once, after the last tick.
type RunSummary struct {
	Elapsed time.Duration
	Ticks   int
	LogPath string
	// ElapsedLine and MetricLine are the two final lines, as persisted.
	ElapsedLine string
	MetricLine  string

	// carry accumulates every kernel result so the work cannot be discarded.
	carry float64
}

// ElapsedSeconds returns the wall-clock duration of the run in seconds.
func (s RunSummary) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// EventKind identifies what an Event reports.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventProgress EventKind = "progress"
	EventFinished EventKind = "finished"
)

// Event is delivered to observers. Progress carries Record, Finished carries
// Summary.
type Event struct {
	Kind    EventKind
	Record  *ProgressRecord
	Summary *RunSummary
}

// Observer receives run lifecycle events. Events arrive on the engine's
// goroutine, in order, after the corresponding line has been persisted.
type Observer interface {
	HandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// HandleEvent calls f(e).
func (f ObserverFunc) HandleEvent(e Event) {
	f(e)
}

// MultiObserver fans out events to multiple observers in order. Nil entries
// are skipped.
func MultiObserver(obs ...Observer) Observer {
	cp := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			cp = append(cp, o)
		}
	}
	return ObserverFunc(func(e Event) {
		for _, o := range cp {
			o.HandleEvent(e)
		}
	})
}
