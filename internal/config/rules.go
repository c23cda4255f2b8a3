package config

// This file defines the path-rewrite and mirror rules used by the path
// resolver, their defaults, and loading them from a YAML file.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RootPlaceholder is substituted with the first path segment in
// MirrorRules.RootTemplate.
const RootPlaceholder = "{root}"

// StripRule removes Segment from any missing path containing Marker.
type StripRule struct {
	Marker  string `yaml:"marker"`
	Segment string `yaml:"segment"`
}

// SubstituteRule replaces From with To in any missing path containing
// Marker. When the substituted path is still missing, each entry of
// NestedDirs is tried by doubling "/<dir>/" into "/<dir>/<dir>/".
type SubstituteRule struct {
	Marker     string   `yaml:"marker"`
	From       string   `yaml:"from"`
	To         string   `yaml:"to"`
	NestedDirs []string `yaml:"nested_dirs"`
}

// MirrorRules re-roots a resolved path into the secondary access path.
type MirrorRules struct {
	SentinelRoot string `yaml:"sentinel_root"`
	SentinelPath string `yaml:"sentinel_path"`
	RootTemplate string `yaml:"root_template"`
}

// Rules bundles everything the version normalizer and path resolver need.
type Rules struct {
	VersionMarker string         `yaml:"version_marker"`
	Strip         StripRule      `yaml:"strip"`
	Substitute    SubstituteRule `yaml:"substitute"`
	Mirror        MirrorRules    `yaml:"mirror"`
}

// DefaultRules returns the rewrite rules of the climatedata host layout.
func DefaultRules() Rules {
	return Rules{
		VersionMarker: "v",
		Strip: StripRule{
			Marker:  "/data2/synda/sdt/data",
			Segment: "/sdt",
		},
		Substitute: SubstituteRule{
			Marker:     "/data4/gsmwork/data/",
			From:       "gsmwork",
			To:         "synda",
			NestedDirs: []string{"output", "output1", "output2"},
		},
		Mirror: MirrorRules{
			SentinelRoot: "data",
			SentinelPath: "/condo/climatedata3",
			RootTemplate: "/condo/climate" + RootPlaceholder,
		},
	}
}

// LoadRules reads a YAML rules file. Fields absent from the file keep their
// default values; unknown fields are rejected.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules on top of [DefaultRules].
func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate rejects rule sets that cannot produce a usable rewrite.
func (r Rules) Validate() error {
	if r.VersionMarker == "" {
		return errors.New("rules: version_marker must not be empty")
	}
	if r.Strip.Marker != "" && r.Strip.Segment == "" {
		return errors.New("rules: strip.segment is required when strip.marker is set")
	}
	if r.Substitute.Marker != "" && r.Substitute.From == "" {
		return errors.New("rules: substitute.from is required when substitute.marker is set")
	}
	for _, d := range r.Substitute.NestedDirs {
		if d == "" || strings.Contains(d, "/") {
			return fmt.Errorf("rules: invalid nested dir %q", d)
		}
	}
	if r.Mirror.SentinelPath == "" {
		return errors.New("rules: mirror.sentinel_path must not be empty")
	}
	if !strings.Contains(r.Mirror.RootTemplate, RootPlaceholder) {
		return fmt.Errorf("rules: mirror.root_template must contain %s", RootPlaceholder)
	}
	return nil
}
