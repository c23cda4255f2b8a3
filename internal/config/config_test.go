package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.CatalogPath = "catalog.csv"
	cfg.OutputPath = "out.csv"
	cfg.NamesPath = DefaultNamesTable
	cfg.DimensionsPath = DefaultDimensionsTable
	return cfg
}

func TestNormalizeFileArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/data/catalog.csv", "/data/catalog.csv"},
		{"surrounding spaces", "  out.csv ", "out.csv"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFileArg(tt.in))
		})
	}
}

func TestValidate_VersionOrder(t *testing.T) {
	tests := []struct {
		name    string
		order   VersionOrder
		wantErr bool
	}{
		{"lexical is valid", OrderLexical, false},
		{"semantic is valid", OrderSemantic, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "calendar", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.VersionOrder = tt.order
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinPolicy(t *testing.T) {
	tests := []struct {
		name    string
		join    JoinPolicy
		wantErr bool
	}{
		{"inner is valid", JoinInner, false},
		{"left is valid", JoinLeft, false},
		{"outer is invalid", "outer", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Join = tt.join
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg := validConfig()
	cfg.MaxYear = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DirCacheSize = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DirCacheSize = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := validConfig()
	cfg.OutputPath = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.NamesPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_LoadsRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version_marker: V\n"), 0o644))

	cfg := validConfig()
	cfg.RulesPath = path
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "V", cfg.Rules.VersionMarker)
	assert.Equal(t, DefaultRules().Strip, cfg.Rules.Strip)
}

func TestValidatePaths(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.ValidatePaths("/out/full.csv", "/in/catalog.csv", "/in/names.csv"))
	assert.Error(t, cfg.ValidatePaths("/in/catalog.csv", "/in/catalog.csv"))
	assert.Error(t, cfg.ValidatePaths("/in/./names.csv", "/in/names.csv"))
}

func TestBindFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("cmipclean", pflag.ContinueOnError)
	o := BindFlags(fs, &cfg)

	err := fs.Parse([]string{
		"--version-order", "Semantic",
		"--max-year", "2050",
		"--keep-unmatched",
		"--no-color",
		"-v", "-d",
		"cat.csv", "out.csv",
	})
	require.NoError(t, err)
	o.Apply(&cfg)
	require.NoError(t, ParsePositionalArgs(&cfg, fs.Args()))

	assert.Equal(t, OrderSemantic, cfg.VersionOrder)
	assert.Equal(t, 2050, cfg.MaxYear)
	assert.Equal(t, JoinLeft, cfg.Join)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "cat.csv", cfg.CatalogPath)
	assert.Equal(t, "out.csv", cfg.OutputPath)
}

func TestBindFlags_InvalidOrder(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("cmipclean", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	assert.Error(t, fs.Parse([]string{"--version-order", "calendar"}))
}

func TestParsePositionalArgs(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, ParsePositionalArgs(&cfg, []string{"only-one.csv"}))
	assert.Error(t, ParsePositionalArgs(&cfg, nil))
}

func TestColorOverridePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	o := &Overrides{forceColor: true, noColor: true}
	o.Apply(&cfg)
	assert.Equal(t, ColorNever, cfg.ColorMode, "--no-color wins over --color")
}
