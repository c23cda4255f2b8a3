// Package config holds runtime configuration: defaults, CLI flag binding,
// path-rewrite rules, and validation. Defaults match the climatedata host
// layout.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
)

// --- Enum types for validated string fields ---

// VersionOrder selects how catalog version strings are ordered during
// duplicate resolution.
type VersionOrder string

const (
	OrderLexical  VersionOrder = "lexical"  // Byte-wise string comparison (default).
	OrderSemantic VersionOrder = "semantic" // Numeric segment comparison.
)

// JoinPolicy controls what happens to records whose variable has no entry
// in one of the lookup tables.
type JoinPolicy string

const (
	JoinInner JoinPolicy = "inner" // Drop unmatched records (default).
	JoinLeft  JoinPolicy = "left"  // Keep unmatched records with empty metadata.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default file names used when no lookup path is given.
const (
	DefaultNamesTable      = "variable_name_lookup_table.csv"
	DefaultDimensionsTable = "variable_dimension_lookup_table.csv"
	DefaultMaxYear         = 2101
	DefaultDirCacheSize    = 4096
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// mutated by the bound CLI flags, and then passed by pointer to packages
// that need it.
type Config struct {
	// Paths (set from positional args and flags).
	CatalogPath    string
	OutputPath     string
	NamesPath      string
	DimensionsPath string
	RulesPath      string // Optional YAML rules file.
	ReportPath     string // Optional YAML run summary.

	// Resolution behavior.
	VersionOrder VersionOrder // Default: "lexical".
	MaxYear      int          // Exclusive upper bound on beg_year. Default: 2101.
	Join         JoinPolicy   // Default: "inner".
	DirCacheSize int          // Memoized directory counts; 0 disables.
	RequireHost  string       // Refuse to run on any other host when set.
	Rules        Rules        // Path rewrite rules; see rules.go.

	// Behavior flags.
	DryRun    bool
	CheckOnly bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the default climatedata layout and
// lookup table names. Lookup table paths may be preset through
// CMIPCLEAN_NAMES and CMIPCLEAN_DIMENSIONS.
func DefaultConfig() Config {
	return Config{
		NamesPath:      env.Str("CMIPCLEAN_NAMES", DefaultNamesTable),
		DimensionsPath: env.Str("CMIPCLEAN_DIMENSIONS", DefaultDimensionsTable),
		VersionOrder:   OrderLexical,
		MaxYear:        DefaultMaxYear,
		Join:           JoinInner,
		DirCacheSize:   DefaultDirCacheSize,
		Rules:          DefaultRules(),
		ColorMode:      ColorAuto,
	}
}

// Validate checks enum fields and numeric bounds, loads the rules file when
// one is configured, and requires the catalog and output paths.
func (c *Config) Validate() error {
	switch c.VersionOrder {
	case OrderLexical, OrderSemantic:
		// valid
	default:
		return errors.New("invalid version order (use 'lexical' or 'semantic')")
	}

	switch c.Join {
	case JoinInner, JoinLeft:
		// valid
	default:
		return errors.New("invalid join policy (use 'inner' or 'left')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MaxYear <= 0 {
		return fmt.Errorf("max year must be positive (got %d)", c.MaxYear)
	}
	if c.DirCacheSize < 0 {
		return fmt.Errorf("dir cache size must not be negative (got %d)", c.DirCacheSize)
	}

	if c.RulesPath != "" {
		rules, err := LoadRules(c.RulesPath)
		if err != nil {
			return err
		}
		c.Rules = rules
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}

	if c.CatalogPath == "" || c.OutputPath == "" {
		return errors.New("need exactly catalog_csv and output_csv")
	}
	if c.NamesPath == "" || c.DimensionsPath == "" {
		return errors.New("lookup table paths must not be empty")
	}
	return nil
}

// ValidatePaths ensures the output file does not overwrite one of the
// inputs. All arguments must be absolute, cleaned paths.
func (c *Config) ValidatePaths(outputAbs string, inputsAbs ...string) error {
	for _, in := range inputsAbs {
		if filepath.Clean(in) == filepath.Clean(outputAbs) {
			return fmt.Errorf("output %s would overwrite an input file", outputAbs)
		}
	}
	return nil
}

// NormalizeFileArg trims surrounding whitespace from a path argument.
func NormalizeFileArg(path string) string {
	return strings.TrimSpace(path)
}
