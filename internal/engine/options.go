package engine

import (
	"io"
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithStream sets the live stream that receives a copy of every log line.
func WithStream(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.stream = w
		}
	}
}

// WithObserver attaches an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o == nil {
			return
		}
		if e.observer == nil {
			e.observer = o
			return
		}
		e.observer = MultiObserver(e.observer, o)
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
