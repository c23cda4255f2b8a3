package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	"github.com/sccasc/cmipclean/internal/catalog"
	"github.com/sccasc/cmipclean/internal/config"
	"github.com/sccasc/cmipclean/internal/dedup"
	"github.com/sccasc/cmipclean/internal/display"
	"github.com/sccasc/cmipclean/internal/enrich"
	"github.com/sccasc/cmipclean/internal/logging"
	"github.com/sccasc/cmipclean/internal/naming"
	"github.com/sccasc/cmipclean/internal/probe"
)

// dumper renders unresolved groups in verbose mode.
var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// Run is the top-level entry point. It cleans cfg.CatalogPath into
// cfg.OutputPath against the operating system filesystem and returns the
// accumulated stats, which are meaningful up to the stage that failed.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	return run(ctx, cfg, log, afero.NewOsFs())
}

// run is Run with the data filesystem injected. CSV inputs and the output
// are always read and written through the os package.
func run(ctx context.Context, cfg *config.Config, log *logging.Logger, fs afero.Fs) (RunStats, error) {
	stats := RunStats{
		RunID:          uuid.NewString(),
		Started:        time.Now(),
		PathsRewritten: make(map[string]int),
		SettledBy:      make(map[string]int),
	}
	var unresolved []*dedup.UnresolvedGroupError

	err := func() error {
		prober, err := probe.New(fs, cfg.DirCacheSize)
		if err != nil {
			return err
		}
		defer func() { stats.Probe = prober.Stats() }()

		// --- Load ---
		records, names, dims, err := load(cfg, log, &stats)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		// --- Normalize versions ---
		for _, r := range records {
			changed, err := naming.NormalizeVersion(r, cfg.Rules.VersionMarker)
			if err != nil {
				return err
			}
			if changed {
				stats.VersionsFixed++
				log.Debug(cfg.Verbose, "  line %d: version -> %s", r.Line, r.Version)
			}
		}
		log.Info("Normalized %s versions", display.FormatCount(stats.VersionsFixed))

		// --- Resolve paths ---
		resolver := naming.NewResolver(prober, cfg.Rules)
		for i, r := range records {
			if i%1000 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			res, err := resolver.Apply(r)
			if err != nil {
				return err
			}
			if res.Rewritten() {
				stats.PathsRewritten[res.Step]++
				log.Debug(cfg.Verbose, "  line %d: %s -> %s", r.Line, r.LocalFile, res.Path)
			}
		}
		if err := naming.AssertResolved(records, prober); err != nil {
			return err
		}
		logRewrites(log, stats.PathsRewritten)

		// --- Partition and tie-break ---
		parts := dedup.Partition(records)
		stats.Unique = len(parts.Unique)
		stats.Groups = len(parts.Groups)
		stats.GroupRecords = parts.Duplicates()
		log.Info("%s unique records, %s duplicate groups (%s records)",
			display.FormatCount(stats.Unique), display.FormatCount(stats.Groups), display.FormatCount(stats.GroupRecords))

		cmp, err := dedup.ComparatorFor(cfg.VersionOrder)
		if err != nil {
			return err
		}
		res, err := dedup.ResolveAll(ctx, parts.Groups, cmp, prober)
		stats.Resolved = len(res.Winners)
		stats.Unresolved = len(res.Unresolved)
		for stage, n := range res.SettledBy() {
			stats.SettledBy[stage.String()] = n
		}
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			unresolved = res.Unresolved
			logUnresolved(cfg, log, err)
			return err
		}
		log.Info("Resolved %s groups (%s records eliminated, %s comparator)",
			display.FormatCount(stats.Resolved), display.FormatCount(stats.Eliminated()), cmp.Name())

		// --- Merge, filter, join, sort ---
		merged := enrich.Merge(parts.Unique, res.Winners)
		kept, err := enrich.FilterYears(merged, cfg.MaxYear)
		if err != nil {
			return err
		}
		stats.OutOfRange = len(merged) - len(kept)
		if stats.OutOfRange > 0 {
			log.Info("Dropped %s records starting in or after %d", display.FormatCount(stats.OutOfRange), cfg.MaxYear)
		}

		joined := enrich.Join(kept, names, dims, cfg.Join)
		stats.UnmatchedDrops = joined.Dropped
		logUnmatched(log, cfg.Join, joined.Unmatched)

		final := joined.Records
		enrich.Sort(final)
		stats.Written = len(final)
		stats.TotalBytes = sumSizes(final)

		if err := ctx.Err(); err != nil {
			return err
		}

		// --- Write ---
		if cfg.DryRun {
			log.Success("[DRY] Would write %s records to %s", display.FormatCount(stats.Written), cfg.OutputPath)
			return nil
		}
		if err := catalog.Write(cfg.OutputPath, final); err != nil {
			return err
		}
		log.Success("Wrote %s records to %s", display.FormatCount(stats.Written), cfg.OutputPath)
		return nil
	}()

	stats.Elapsed = time.Since(stats.Started)
	if cfg.ReportPath != "" {
		if rerr := WriteReport(cfg.ReportPath, cfg, &stats, unresolved, err); rerr != nil {
			log.Warn("Cannot write report: %v", rerr)
		}
	}
	if errors.Is(err, context.Canceled) {
		log.Warn("Interrupted")
	}
	logSummary(cfg, log, &stats, err)
	return stats, err
}

// load reads the catalog and both lookup tables.
func load(cfg *config.Config, log *logging.Logger, stats *RunStats) ([]*catalog.Record, *catalog.Table, *catalog.Table, error) {
	records, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, nil, err
	}
	stats.Loaded = len(records)
	log.Info("Loaded %s records from %s", display.FormatCount(len(records)), cfg.CatalogPath)

	names, err := catalog.LoadNames(cfg.NamesPath)
	if err != nil {
		return nil, nil, nil, err
	}
	dims, err := catalog.LoadDimensions(cfg.DimensionsPath)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, t := range []*catalog.Table{names, dims} {
		if len(t.Duplicates) > 0 {
			stats.DuplicateLookup += len(t.Duplicates)
			log.Warn("%s: %d duplicate variables, first row kept: %v", t.Name, len(t.Duplicates), t.Duplicates)
		}
	}
	return records, names, dims, nil
}

// --- Logging helpers ---

func logRewrites(log *logging.Logger, rewritten map[string]int) {
	if len(rewritten) == 0 {
		log.Info("All paths resolved as given")
		return
	}
	steps := make([]string, 0, len(rewritten))
	for s := range rewritten {
		steps = append(steps, s)
	}
	sort.Strings(steps)
	for _, s := range steps {
		log.Info("Rewrote %s paths (%s)", display.FormatCount(rewritten[s]), s)
	}
}

func logUnresolved(cfg *config.Config, log *logging.Logger, err error) {
	errs := multierr.Errors(err)
	log.Error("%d duplicate groups could not be resolved:", len(errs))
	for _, e := range errs {
		var uge *dedup.UnresolvedGroupError
		if !errors.As(e, &uge) {
			log.Error("  %v", e)
			continue
		}
		log.Error("  %s (stopped at %s stage)", uge.Filename, uge.Stage)
		for _, p := range uge.Paths {
			log.Error("    %s", p)
		}
		if uge.Cause != nil {
			log.Error("    cause: %v", uge.Cause)
		}
		log.Debug(cfg.Verbose, "%s", dumper.Sdump(uge))
	}
}

func logUnmatched(log *logging.Logger, policy config.JoinPolicy, unmatched []enrich.Unmatched) {
	verb := "Dropped"
	if policy == config.JoinLeft {
		verb = "Kept"
	}
	for _, u := range unmatched {
		log.Warn("%s %d records of variable %q (not in %s)", verb, u.Records, u.Variable, u.Table)
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats, err error) {
	log.Info("==============================")
	log.Info("Run %s", stats.RunID)
	log.Info("  Loaded: %s, written: %s", display.FormatCount(stats.Loaded), display.FormatCount(stats.Written))
	log.Info("  Filesystem: %d stats, %d mtimes, %d listings (%d cached)",
		stats.Probe.ExistsChecks, stats.Probe.ModTimeQueries, stats.Probe.DirListings, stats.Probe.DirCacheHits)
	log.Info("  Elapsed: %s", stats.Elapsed.Round(time.Millisecond))
	if err != nil {
		log.Error("Failed: %s", firstLine(err))
		return
	}
	size := display.FormatBytes(stats.TotalBytes)
	if cfg.DryRun {
		log.Info("  Catalogued size: %s (dry run)", size)
		return
	}
	log.Success("  Catalogued size: %s", size)
}

// firstLine trims a combined error to its first part plus a count.
func firstLine(err error) string {
	errs := multierr.Errors(err)
	if len(errs) <= 1 {
		return err.Error()
	}
	return fmt.Sprintf("%v (and %d more)", errs[0], len(errs)-1)
}
