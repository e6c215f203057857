package main

import (
	"fmt"
	"strings"

	"github.com/bgricker/tcreport/internal/config"
	"github.com/bgricker/tcreport/internal/output"
	"github.com/bgricker/tcreport/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the status of every catalogued test case",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	in, err := loadInputs(root, cfg, logger)
	if err != nil {
		return err
	}

	filtered, err := applyFilters(in, cfg)
	if err != nil {
		return err
	}

	rep := report.Build(filtered.entries, filtered.index)

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout()).Render(rep); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(output.NewReport(rep, filtered.warnings)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if cfg.FailOnFailed && rep.Counters.Failed > 0 {
		return fmt.Errorf("%d automated test case(s) failed", rep.Counters.Failed)
	}

	return nil
}
