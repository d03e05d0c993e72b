package runlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Session is the single open handle on a run log for the duration of a run.
// Every line goes to the live stream first and is then appended to the file
// and flushed, so an interrupted run leaves everything written so far.
type Session struct {
	path   string
	file   *os.File
	w      *bufio.Writer
	stream io.Writer
	lines  int
}

// Create truncates or creates the log at path. A nil stream discards the
// live copy.
func Create(path string, stream io.Writer) (*Session, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		stream = io.Discard
	}
	return &Session{
		path:   path,
		file:   f,
		w:      bufio.NewWriter(f),
		stream: stream,
	}, nil
}

// Path returns the location of the log file.
func (s *Session) Path() string { return s.path }

// Lines returns how many lines have been persisted.
func (s *Session) Lines() int { return s.lines }

// WriteLine writes line plus a newline to the stream and then to the file.
func (s *Session) WriteLine(line string) error {
	if s.file == nil {
		return fmt.Errorf("runlog: write to closed session %s", s.path)
	}
	if _, err := io.WriteString(s.stream, line+"\n"); err != nil {
		return fmt.Errorf("write live stream: %w", err)
	}
	if _, err := s.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	s.lines++
	return nil
}

// Close flushes and closes the file. Calling it again is a no-op.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
