package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bgricker/tcreport/internal/catalog"
	"github.com/bgricker/tcreport/internal/config"
	"github.com/bgricker/tcreport/internal/discovery"
	"github.com/bgricker/tcreport/internal/execution"
	"github.com/bgricker/tcreport/internal/filter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportInputs bundles the loaded catalog and results with non-fatal warnings.
type reportInputs struct {
	catalogPath string
	resultsPath string
	entries     []catalog.Entry
	index       execution.Index
	warnings    []string
}

// loadInputs reads the catalog and the results. A missing or malformed
// catalog is fatal; missing results degrade to an empty index.
func loadInputs(root string, cfg config.Config, logger *zap.Logger) (reportInputs, error) {
	catalogPath, err := discovery.Catalog(root, cfg.Catalog)
	if err != nil {
		return reportInputs{}, err
	}
	entries, err := catalog.Load(discovery.Join(root, catalogPath))
	if err != nil {
		return reportInputs{}, err
	}
	logger.Debug("loaded catalog", zap.String("path", catalogPath), zap.Int("entries", len(entries)))

	in := reportInputs{catalogPath: catalogPath, entries: entries}

	in.resultsPath = discovery.Results(root, cfg.Results)
	logger.Debug("reading automated results", zap.String("path", in.resultsPath))
	records, err := execution.Load(discovery.Join(root, in.resultsPath))
	switch {
	case errors.Is(err, execution.ErrNotFound):
		msg := fmt.Sprintf("%s not found, automated tests will be reported as not found", in.resultsPath)
		logger.Warn(msg)
		in.warnings = append(in.warnings, msg)
	case err != nil:
		return reportInputs{}, err
	}
	in.index = execution.NewIndex(records)
	logger.Debug("indexed results", zap.Int("records", len(records)), zap.Int("test_cases", len(in.index)))

	return in, nil
}

func applyFilters(in reportInputs, cfg config.Config) (reportInputs, error) {
	patterns, err := filter.Compile(cfg.Only)
	if err != nil {
		return reportInputs{}, err
	}
	out := in
	out.entries = filter.Entries(in.entries, patterns)
	return out, nil
}

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}
