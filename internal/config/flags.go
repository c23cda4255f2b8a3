package config

// This file binds CLI flags to Config and parses positional arguments.
// Flags are grouped into inputs, resolution, behavior, and display.
// Negated flags (e.g. --no-color) are applied after parsing so Config
// defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Overrides holds boolean flags that are applied to Config after parsing.
type Overrides struct {
	forceColor    bool
	noColor       bool
	keepUnmatched bool
}

// BindFlags registers every option on fs, writing straight into cfg where
// possible. The returned Overrides must be applied with [Overrides.Apply]
// once fs has been parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *Overrides {
	var o Overrides
	defineInputFlags(fs, cfg)
	defineResolutionFlags(fs, cfg, &o)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &o)
	return &o
}

// defineInputFlags registers --names, --dimensions, --rules, --report.
func defineInputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.NamesPath, "names", cfg.NamesPath, "Variable name lookup table (CSV)")
	fs.StringVar(&cfg.DimensionsPath, "dimensions", cfg.DimensionsPath, "Variable dimension lookup table (CSV)")
	fs.StringVar(&cfg.RulesPath, "rules", "", "YAML file overriding path rewrite rules")
	fs.StringVar(&cfg.ReportPath, "report", "", "Write a YAML run summary to this path")
}

// defineResolutionFlags registers --version-order, --max-year,
// --keep-unmatched, --dir-cache, --require-host.
func defineResolutionFlags(fs *pflag.FlagSet, cfg *Config, o *Overrides) {
	fs.Var(&versionOrderValue{&cfg.VersionOrder}, "version-order", "Version ordering: lexical | semantic")
	fs.IntVar(&cfg.MaxYear, "max-year", cfg.MaxYear, "Drop records whose beginning year is >= this value")
	fs.BoolVar(&o.keepUnmatched, "keep-unmatched", false, "Keep records whose variable is missing from a lookup table")
	fs.IntVar(&cfg.DirCacheSize, "dir-cache", cfg.DirCacheSize, "Directories whose entry counts are memoized (0 disables)")
	fs.StringVar(&cfg.RequireHost, "require-host", "", "Refuse to run unless the hostname matches")
}

// defineBehaviorFlags registers --dry-run and --check.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Run every stage but do not write the output file")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Validate inputs and environment, then exit")
}

// defineDisplayFlags registers --color, --no-color, --verbose, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, o *Overrides) {
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
}

// Apply copies negated and override flag values into cfg.
func (o *Overrides) Apply(cfg *Config) {
	if o.keepUnmatched {
		cfg.Join = JoinLeft
	}
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// ParsePositionalArgs sets CatalogPath and OutputPath from the two
// positional args.
func ParsePositionalArgs(cfg *Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("need exactly catalog_csv and output_csv (got %d args)", len(args))
	}
	cfg.CatalogPath = NormalizeFileArg(args[0])
	cfg.OutputPath = NormalizeFileArg(args[1])
	return nil
}

// pflag.Value adapter so VersionOrder can be used with fs.Var.

type versionOrderValue struct{ p *VersionOrder }

func (v *versionOrderValue) String() string { return string(*v.p) }
func (v *versionOrderValue) Type() string   { return "order" }
func (v *versionOrderValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "lexical":
		*v.p = OrderLexical
	case "semantic":
		*v.p = OrderSemantic
	default:
		return fmt.Errorf("invalid version order %q (use 'lexical' or 'semantic')", s)
	}
	return nil
}
