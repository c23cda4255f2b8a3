// Package check provides environment diagnostics (--check mode) and
// pre-pipeline input validation (CheckInputs) for the catalog, the lookup
// tables, the output directory and the host guard.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xyproto/files"

	"github.com/sccasc/cmipclean/internal/config"
)

// Sentinel errors returned by CheckInputs.
var (
	ErrCatalogNotFound  = errors.New("catalog file not found")
	ErrLookupNotFound   = errors.New("lookup table not found")
	ErrOutputDirMissing = errors.New("output directory does not exist")
	ErrWrongHost        = errors.New("refusing to run on this host")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// hostname is replaced in tests.
var hostname = os.Hostname

// RunCheck runs the interactive --check flow: it reports the host, every
// input file, the output directory and the active rewrite rules. Unlike
// CheckInputs it does not stop at the first problem; the returned error is
// the first one found, or nil.
func RunCheck(cfg *config.Config, log Logger) error {
	log.Info("=== Environment Check ===")

	var first error
	note := func(err error) {
		if err != nil {
			log.Error("%v", err)
			if first == nil {
				first = err
			}
		}
	}

	if name, err := hostname(); err == nil {
		log.Info("Host: %s", name)
	}
	if cfg.RequireHost != "" {
		if err := CheckHost(cfg.RequireHost); err != nil {
			note(err)
		} else {
			log.Success("Host matches %s", cfg.RequireHost)
		}
	}

	for _, in := range inputs(cfg) {
		if err := checkFile(in.path, in.missing); err != nil {
			note(err)
			continue
		}
		log.Success("%s: %s", in.label, in.path)
	}

	if err := checkOutputDir(cfg.OutputPath); err != nil {
		note(err)
	} else {
		log.Success("Output directory: %s", filepath.Dir(cfg.OutputPath))
	}

	logRules(cfg.Rules, cfg.Verbose, log)
	return first
}

// CheckInputs is the pre-pipeline validation: the host guard, every input
// file and the output directory. Returns a wrapped sentinel error on the
// first failure.
func CheckInputs(cfg *config.Config) error {
	if cfg.RequireHost != "" {
		if err := CheckHost(cfg.RequireHost); err != nil {
			return err
		}
	}
	for _, in := range inputs(cfg) {
		if err := checkFile(in.path, in.missing); err != nil {
			return err
		}
	}
	return checkOutputDir(cfg.OutputPath)
}

// CheckHost fails unless the local hostname equals want.
func CheckHost(want string) error {
	got, err := hostname()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrongHost, err)
	}
	if got != want {
		return fmt.Errorf("%w: running on %s, want %s", ErrWrongHost, got, want)
	}
	return nil
}

// --- internal helpers ---

type input struct {
	label   string
	path    string
	missing error
}

func inputs(cfg *config.Config) []input {
	return []input{
		{"Catalog", cfg.CatalogPath, ErrCatalogNotFound},
		{"Names table", cfg.NamesPath, ErrLookupNotFound},
		{"Dimensions table", cfg.DimensionsPath, ErrLookupNotFound},
	}
}

func checkFile(path string, missing error) error {
	if !files.IsFile(path) {
		return fmt.Errorf("%w: %s", missing, path)
	}
	return nil
}

func checkOutputDir(output string) error {
	dir := filepath.Dir(output)
	if !files.IsDir(dir) {
		return fmt.Errorf("%w: %s", ErrOutputDirMissing, dir)
	}
	return nil
}

func logRules(r config.Rules, verbose bool, log Logger) {
	log.Info("Version marker: %q", r.VersionMarker)
	log.Info("Strip rule: %s (remove %s)", r.Strip.Marker, r.Strip.Segment)
	log.Info("Substitute rule: %s (%s -> %s)", r.Substitute.Marker, r.Substitute.From, r.Substitute.To)
	log.Debug(verbose, "  nested dirs: %v", r.Substitute.NestedDirs)
	log.Info("Mirror: /%s -> %s, other roots -> %s", r.Mirror.SentinelRoot, r.Mirror.SentinelPath, r.Mirror.RootTemplate)
}
