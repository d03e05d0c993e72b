package runlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrNoLog is returned when the log file does not exist.
	ErrNoLog = errors.New("no run.log")
	// ErrNoMetric is returned when a log holds neither a METRIC nor an
	// elapsed_s line.
	ErrNoMetric = errors.New("no metric")
)

// Metric is a value scraped from a run log. Note says which line produced it.
type Metric struct {
	Value float64
	Note  string
}

// ExtractMetric scans a log for its performance metric. The first parseable
// METRIC line wins; otherwise the last elapsed_s line is used.
func ExtractMetric(path string) (Metric, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metric{}, ErrNoLog
		}
		return Metric{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var fallback *Metric
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())

		if idx := indexFold(s, elapsedPrefix); idx >= 0 {
			raw := strings.TrimSpace(s[idx+len(elapsedPrefix):])
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				fallback = &Metric{Value: v, Note: "elapsed_s"}
			}
		}

		if !hasPrefixFold(s, "METRIC") {
			continue
		}
		after := ""
		if sp := strings.IndexByte(s, ' '); sp >= 0 {
			after = strings.TrimSpace(s[sp+1:])
		}
		if eq := strings.IndexByte(after, '='); eq > 0 {
			name := strings.TrimSpace(after[:eq])
			if v, err := strconv.ParseFloat(strings.TrimSpace(after[eq+1:]), 64); err == nil {
				note := "METRIC"
				if name != "" {
					note = "METRIC " + name
				}
				return Metric{Value: v, Note: note}, nil
			}
		}
		if v, err := strconv.ParseFloat(after, 64); err == nil {
			return Metric{Value: v, Note: "METRIC"}, nil
		}
	}
	if err := sc.Err(); err != nil {
		return Metric{}, fmt.Errorf("read %s: %w", path, err)
	}
	if fallback != nil {
		return *fallback, nil
	}
	return Metric{}, ErrNoMetric
}

// ExtractInt looks for "--flag 12" or "--flag=12" in a file and returns the
// first integer found. Missing files and unparseable values report false.
func ExtractInt(path, flag string) (int64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		idx := indexFold(line, flag)
		if idx < 0 {
			continue
		}
		fields := strings.FieldsFunc(line[idx+len(flag):], func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r' || r == '='
		})
		if len(fields) == 0 {
			continue
		}
		if v, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// Complete reports whether a log finished normally, i.e. its last two lines
// are the elapsed_s line followed by the METRIC line.
func Complete(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, ErrNoLog
		}
		return false, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 2 {
		return false, nil
	}
	last, prev := lines[len(lines)-1], lines[len(lines)-2]
	return strings.HasPrefix(prev, elapsedPrefix) && strings.HasPrefix(last, metricPrefix), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
