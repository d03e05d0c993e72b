// Package aggregate scrapes finished replicate runs and writes per-grid
// statistics reports and precision-safe summaries.
package aggregate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/gridbench/internal/ctxlog"
	"github.com/vk/gridbench/internal/plan"
	"github.com/vk/gridbench/internal/runlog"
	"github.com/vk/gridbench/internal/stats"
	"github.com/vk/gridbench/internal/sweep"
)

// seedSources are searched in order for a replicate's seed.
var seedSources = []string{sweep.ArgsFileName, "run_args.txt", "cmd.txt", plan.LogFileName}

// Row is one replicate's contribution to a grid report.
type Row struct {
	RepID  string
	Seed   *int64
	Metric float64
	Note   string
}

// SummaryRow is one grid's line in the TSV/JSONL summaries.
type SummaryRow struct {
	Grid       int
	Stat       string
	MeanFull   string
	StderrFull string
	N          int
	Pretty     string
}

// Collect scans runDir for grid_*/rep_* directories and scrapes each
// replicate's metric. Replicates without a metric are skipped.
func Collect(ctx context.Context, runDir string) (map[int][]Row, error) {
	logger := ctxlog.FromContext(ctx)

	gridDirs, err := sortedDirs(runDir)
	if err != nil {
		return nil, fmt.Errorf("read run directory: %w", err)
	}

	perGrid := make(map[int][]Row)
	for _, gname := range gridDirs {
		grid, ok := sweep.ParseGridDir(gname)
		if !ok {
			if strings.HasPrefix(gname, "grid_") {
				logger.Warn("Could not parse grid from directory name.", "dir", gname)
			}
			continue
		}
		gdir := filepath.Join(runDir, gname)
		repDirs, err := sortedDirs(gdir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", gdir, err)
		}

		var rows []Row
		for _, rep := range repDirs {
			if !sweep.IsRepDir(rep) {
				continue
			}
			rdir := filepath.Join(gdir, rep)
			logPath := filepath.Join(rdir, plan.LogFileName)
			m, err := runlog.ExtractMetric(logPath)
			if err != nil {
				logger.Warn("No metric found.", "grid", grid, "rep", rep, "reason", err)
				continue
			}
			if done, _ := runlog.Complete(logPath); !done {
				logger.Warn("Replicate log did not finish normally.", "grid", grid, "rep", rep)
			}
			rows = append(rows, Row{RepID: rep, Seed: findSeed(rdir), Metric: m.Value, Note: m.Note})
			logger.Debug("Collected replicate.", "grid", grid, "rep", rep, "metric", m.Value, "note", m.Note)
		}
		if len(rows) == 0 {
			logger.Warn("No rows parsed for grid.", "dir", gname)
			continue
		}
		perGrid[grid] = append(perGrid[grid], rows...)
	}
	return perGrid, nil
}

// Summarize computes the summary row for one grid.
func Summarize(grid int, rows []Row) SummaryRow {
	r := compute(rows)
	return SummaryRow{
		Grid:       grid,
		Stat:       "value",
		MeanFull:   formatFull(r.Mean),
		StderrFull: formatFull(r.Stderr),
		N:          r.N,
		Pretty:     formatExp(r.Mean) + " ± " + formatExp(r.Stderr),
	}
}

// Report is the set of files written by Write.
type Report struct {
	GridReports []string
	TSV         string
	JSONL       string
	Summary     []SummaryRow
}

// Write collects runDir and writes every report. It returns an error when
// there is nothing to aggregate.
func Write(ctx context.Context, runDir string) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	perGrid, err := Collect(ctx, runDir)
	if err != nil {
		return nil, err
	}
	if len(perGrid) == 0 {
		return nil, fmt.Errorf("no replicate metrics found under %s", runDir)
	}

	grids := make([]int, 0, len(perGrid))
	for g := range perGrid {
		grids = append(grids, g)
	}
	sort.Ints(grids)

	report := &Report{}
	for _, g := range grids {
		rows := perGrid[g]
		path, err := WriteGridReport(runDir, g, rows)
		if err != nil {
			return nil, err
		}
		report.GridReports = append(report.GridReports, path)
		sr := Summarize(g, rows)
		report.Summary = append(report.Summary, sr)
		logger.Info("Aggregated grid.", "grid", g, "n", sr.N, "mean", sr.MeanFull, "stderr", sr.StderrFull)
	}

	if report.TSV, err = WriteSummaryTSV(runDir, report.Summary); err != nil {
		return nil, err
	}
	if report.JSONL, err = WriteSummaryJSONL(runDir, report.Summary); err != nil {
		return nil, err
	}
	return report, nil
}

func compute(rows []Row) stats.Result {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Metric
	}
	return stats.Compute(values)
}

func findSeed(repDir string) *int64 {
	for _, name := range seedSources {
		if v, ok := runlog.ExtractInt(filepath.Join(repDir, name), "--seed"); ok {
			return &v
		}
	}
	return nil
}

func sortedDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
