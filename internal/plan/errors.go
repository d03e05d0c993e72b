package plan

import "errors"

var (
	// ErrInvalidConfiguration is returned when a required parameter is
	// missing, non-numeric or non-positive. Nothing has been written when it
	// is returned.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutputUnavailable is returned when the output directory cannot be
	// created or the run log cannot be opened for writing.
	ErrOutputUnavailable = errors.New("output unavailable")
)
