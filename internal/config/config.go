package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/tcreport/internal/discovery"
	"github.com/bgricker/tcreport/internal/recorder"
)

// FileName is the optional per-project configuration file.
const FileName = ".tcreport.yml"

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Catalog string   `yaml:"catalog"`
	Results string   `yaml:"results"`
	Only    []string `yaml:"only"`

	Format       string `yaml:"format"`
	CasePattern  string `yaml:"case_pattern"`
	FailOnFailed bool   `yaml:"fail_on_failed"`
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		Results:     discovery.DefaultResults,
		Format:      FormatPretty,
		CasePattern: recorder.DefaultCasePattern,
	}
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Load reads .tcreport.yml from the project root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.Catalog != "" {
		out.Catalog = override.Catalog
	}
	if override.Results != "" {
		out.Results = override.Results
	}
	if len(override.Only) > 0 {
		out.Only = append([]string{}, override.Only...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.CasePattern != "" {
		out.CasePattern = override.CasePattern
	}
	if override.FailOnFailed {
		out.FailOnFailed = true
	}
	if override.Verbose {
		out.Verbose = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Catalog.Set {
		cfg.Catalog = flags.Catalog.Value
	}
	if flags.Results.Set {
		cfg.Results = flags.Results.Value
	}
	if len(flags.Only.Values) > 0 {
		cfg.Only = append([]string{}, flags.Only.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.CasePattern.Set {
		cfg.CasePattern = flags.CasePattern.Value
	}
	if flags.FailOnFailed.Set {
		cfg.FailOnFailed = flags.FailOnFailed.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Catalog      StringFlag
	Results      StringFlag
	Only         SliceFlag
	Format       StringFlag
	CasePattern  StringFlag
	FailOnFailed BoolFlag
	Verbose      BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
