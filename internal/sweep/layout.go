package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	gridPrefix = "grid_"
	repPrefix  = "rep_"
	// ArgsFileName records the parameters of a replicate for later scraping.
	ArgsFileName = "args.txt"
	infoFileName = "_run_info.txt"
	stampLayout  = "20060102_150405"
)

// GridDir returns the directory that groups replicates of one grid size.
func GridDir(root string, grid int) string {
	return filepath.Join(root, gridPrefix+strconv.Itoa(grid))
}

// RepName formats a 1-based replicate index as rep_NNN.
func RepName(index int) string {
	return fmt.Sprintf("%s%03d", repPrefix, index)
}

// ParseGridDir extracts the grid size from a grid_<g> directory name.
func ParseGridDir(name string) (int, bool) {
	if !strings.HasPrefix(strings.ToLower(name), gridPrefix) {
		return 0, false
	}
	g, err := strconv.Atoi(name[len(gridPrefix):])
	if err != nil {
		return 0, false
	}
	return g, true
}

// IsRepDir reports whether name looks like a replicate directory.
func IsRepDir(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), repPrefix)
}

// NextRepIndex returns one past the highest rep_NNN index under gridDir, or 1
// when there are none or the directory cannot be read.
func NextRepIndex(gridDir string) int {
	entries, err := os.ReadDir(gridDir)
	if err != nil {
		return 1
	}
	highest := 0
	for _, e := range entries {
		if !e.IsDir() || !IsRepDir(e.Name()) {
			continue
		}
		if idx, err := strconv.Atoi(e.Name()[len(repPrefix):]); err == nil && idx > highest {
			highest = idx
		}
	}
	return highest + 1
}

// NewRunDir creates root/run_YYYYMMDD_HHMMSS with a short info file and
// returns its path.
func NewRunDir(root string, now time.Time) (string, error) {
	dir := filepath.Join(root, "run_"+now.Format(stampLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}
	info := fmt.Sprintf("Run created: %s\nRuns root:   %s\n", now.Format(time.DateTime), root)
	if err := os.WriteFile(filepath.Join(dir, infoFileName), []byte(info), 0o644); err != nil {
		return "", fmt.Errorf("write run info: %w", err)
	}
	return dir, nil
}
