// Command cmipclean is the entrypoint for the CMIP catalog cleaner.
// It parses flags, validates config and paths, and either runs the
// environment check (--check) or the cleaning pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sccasc/cmipclean/internal/check"
	"github.com/sccasc/cmipclean/internal/config"
	"github.com/sccasc/cmipclean/internal/display"
	"github.com/sccasc/cmipclean/internal/logging"
	"github.com/sccasc/cmipclean/internal/pipeline"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

// errLogged marks an error that has already been reported through the
// logger.
var errLogged = errors.New("failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errLogged) {
			fmt.Fprintf(os.Stderr, "cmipclean: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "cmipclean [OPTIONS] <catalog_csv> <output_csv>",
		Short: "Deduplicate and enrich a CMIP file catalog",
		Long: `cmipclean keeps one authoritative row per filename in a CMIP catalog CSV.
Duplicates are decided by version, then modification time, then the number
of entries in the containing directory. Broken paths are repaired with the
configured rewrite rules, records starting in or after --max-year are
dropped, and variable names and dimensions are joined from lookup tables.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	fs := cmd.Flags()
	fs.SortFlags = false
	overrides := config.BindFlags(fs, &cfg)
	fs.BoolP("version", "V", false, "Print version and exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := config.ParsePositionalArgs(&cfg, args); err != nil {
			return err
		}
		overrides.Apply(&cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(cmd.Context(), &cfg)
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	// 1. Environment check only.
	if cfg.CheckOnly {
		if err := check.RunCheck(cfg, log); err != nil {
			return errLogged
		}
		log.Success("Check passed")
		return nil
	}

	// 2. The output must not overwrite an input.
	outputAbs, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputPath)
		return errLogged
	}
	var inputsAbs []string
	for _, p := range []string{cfg.CatalogPath, cfg.NamesPath, cfg.DimensionsPath} {
		abs, err := filepath.Abs(p)
		if err != nil {
			log.Error("Cannot resolve path: %s", p)
			return errLogged
		}
		inputsAbs = append(inputsAbs, abs)
	}
	if err := cfg.ValidatePaths(outputAbs, inputsAbs...); err != nil {
		log.Error("%v", err)
		return errLogged
	}

	// 3. Inputs, output directory and host guard.
	if err := check.CheckInputs(cfg); err != nil {
		log.Error("%v", err)
		return errLogged
	}

	log.Info("=== cmipclean v%s ===", version)
	log.Info("In:  %s", cfg.CatalogPath)
	log.Info("Out: %s", cfg.OutputPath)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	log.Info("")

	// 4. Clean.
	if _, err := pipeline.Run(ctx, cfg, log); err != nil {
		return errLogged
	}
	return nil
}
