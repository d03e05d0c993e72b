package aggregate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// now is replaced in tests.
var now = time.Now

// WriteGridReport writes aggregate_grid_<grid>.txt and returns its path.
func WriteGridReport(runDir string, grid int, rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("grid %d: no rows", grid)
	}
	r := compute(rows)
	path := filepath.Join(runDir, fmt.Sprintf("aggregate_grid_%d.txt", grid))

	return path, writeFile(path, func(w *bufio.Writer) {
		fmt.Fprintln(w, "# Aggregate over replicates (grouped by grid)")
		fmt.Fprintln(w, "# run: "+runDir)
		fmt.Fprintf(w, "# group (grid): %d\n", grid)
		fmt.Fprintln(w, "# generated: "+now().Format(time.DateTime))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "rep\tseed\tmetric\t(note)")
		for _, row := range rows {
			seed := ""
			if row.Seed != nil {
				seed = strconv.FormatInt(*row.Seed, 10)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.RepID, seed, formatFull(row.Metric), row.Note)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "n = %d\n", r.N)
		fmt.Fprintf(w, "mean = %s\n", formatFull(r.Mean))
		fmt.Fprintf(w, "stddev (sample) = %s\n", formatFull(r.SampleStdev))
		fmt.Fprintf(w, "stderr = %s\n", formatFull(r.Stderr))
		fmt.Fprintf(w, "95%% CI = mean ± %s\n", formatFull(r.CI95))
	})
}

// WriteSummaryTSV writes aggregate_summary.tsv and returns its path.
func WriteSummaryTSV(runDir string, rows []SummaryRow) (string, error) {
	path := filepath.Join(runDir, "aggregate_summary.tsv")
	return path, writeFile(path, func(w *bufio.Writer) {
		fmt.Fprintln(w, "grid\tstat\tmean_full\tstderr_full\tn\tmean_pm_pretty")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", r.Grid, r.Stat, r.MeanFull, r.StderrFull, r.N, r.Pretty)
		}
	})
}

// summaryLine is the JSONL shape. Means are strings so no digits are lost.
type summaryLine struct {
	Grid         int    `json:"grid"`
	Stat         string `json:"stat"`
	MeanFull     string `json:"mean_full"`
	StderrFull   string `json:"stderr_full"`
	N            int    `json:"n"`
	MeanPMPretty string `json:"mean_pm_pretty"`
}

// WriteSummaryJSONL writes aggregate_summary.jsonl and returns its path.
func WriteSummaryJSONL(runDir string, rows []SummaryRow) (string, error) {
	path := filepath.Join(runDir, "aggregate_summary.jsonl")
	var encErr error
	err := writeFile(path, func(w *bufio.Writer) {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, r := range rows {
			if err := enc.Encode(summaryLine{
				Grid:         r.Grid,
				Stat:         r.Stat,
				MeanFull:     r.MeanFull,
				StderrFull:   r.StderrFull,
				N:            r.N,
				MeanPMPretty: r.Pretty,
			}); err != nil && encErr == nil {
				encErr = err
			}
		}
	})
	if err == nil {
		err = encErr
	}
	return path, err
}

func writeFile(path string, body func(*bufio.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	body(w)
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// formatFull is the shortest representation that round-trips.
func formatFull(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatExp is for display columns only.
func formatExp(v float64) string {
	return strconv.FormatFloat(v, 'E', 6, 64)
}
