package pipeline

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sccasc/cmipclean/internal/config"
	"github.com/sccasc/cmipclean/internal/dedup"
)

// Report is the YAML run summary written with --report.
type Report struct {
	RunID      string            `yaml:"run_id"`
	Started    string            `yaml:"started"`
	Elapsed    string            `yaml:"elapsed"`
	Catalog    string            `yaml:"catalog"`
	Output     string            `yaml:"output"`
	DryRun     bool              `yaml:"dry_run,omitempty"`
	Order      string            `yaml:"version_order"`
	Join       string            `yaml:"join"`
	MaxYear    int               `yaml:"max_year"`
	Status     string            `yaml:"status"`
	Error      string            `yaml:"error,omitempty"`
	Counts     ReportCounts      `yaml:"counts"`
	Rewrites   map[string]int    `yaml:"rewrites,omitempty"`
	SettledBy  map[string]int    `yaml:"settled_by,omitempty"`
	Unresolved []UnresolvedEntry `yaml:"unresolved,omitempty"`
}

// ReportCounts holds the per-stage record counts of a Report.
type ReportCounts struct {
	Loaded         int   `yaml:"loaded"`
	VersionsFixed  int   `yaml:"versions_fixed"`
	Unique         int   `yaml:"unique"`
	Groups         int   `yaml:"groups"`
	GroupRecords   int   `yaml:"group_records"`
	Resolved       int   `yaml:"resolved"`
	Unresolved     int   `yaml:"unresolved"`
	OutOfRange     int   `yaml:"out_of_range"`
	UnmatchedDrops int   `yaml:"unmatched_dropped"`
	Written        int   `yaml:"written"`
	TotalBytes     int64 `yaml:"total_bytes"`
}

// UnresolvedEntry describes one duplicate group left without a winner.
type UnresolvedEntry struct {
	Filename string   `yaml:"filename"`
	Stage    string   `yaml:"stage"`
	Paths    []string `yaml:"paths"`
	Cause    string   `yaml:"cause,omitempty"`
}

// NewReport builds the summary for a finished run. runErr is the error Run
// returned, if any.
func NewReport(cfg *config.Config, stats *RunStats, unresolved []*dedup.UnresolvedGroupError, runErr error) Report {
	r := Report{
		RunID:   stats.RunID,
		Started: stats.Started.Format(time.RFC3339),
		Elapsed: stats.Elapsed.Round(time.Millisecond).String(),
		Catalog: cfg.CatalogPath,
		Output:  cfg.OutputPath,
		DryRun:  cfg.DryRun,
		Order:   string(cfg.VersionOrder),
		Join:    string(cfg.Join),
		MaxYear: cfg.MaxYear,
		Status:  "ok",
		Counts: ReportCounts{
			Loaded:         stats.Loaded,
			VersionsFixed:  stats.VersionsFixed,
			Unique:         stats.Unique,
			Groups:         stats.Groups,
			GroupRecords:   stats.GroupRecords,
			Resolved:       stats.Resolved,
			Unresolved:     stats.Unresolved,
			OutOfRange:     stats.OutOfRange,
			UnmatchedDrops: stats.UnmatchedDrops,
			Written:        stats.Written,
			TotalBytes:     stats.TotalBytes,
		},
	}
	if len(stats.PathsRewritten) > 0 {
		r.Rewrites = stats.PathsRewritten
	}
	if len(stats.SettledBy) > 0 {
		r.SettledBy = stats.SettledBy
	}
	if runErr != nil {
		r.Status = "failed"
		r.Error = firstLine(runErr)
	}
	for _, u := range unresolved {
		e := UnresolvedEntry{Filename: u.Filename, Stage: u.Stage.String(), Paths: u.Paths}
		if u.Cause != nil {
			e.Cause = u.Cause.Error()
		}
		r.Unresolved = append(r.Unresolved, e)
	}
	return r
}

// WriteReport marshals the run summary to path.
func WriteReport(path string, cfg *config.Config, stats *RunStats, unresolved []*dedup.UnresolvedGroupError, runErr error) error {
	data, err := yaml.Marshal(NewReport(cfg, stats, unresolved, runErr))
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
