package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bgricker/tcreport/internal/discovery"
	"github.com/bgricker/tcreport/internal/execution"
	"github.com/bgricker/tcreport/internal/recorder"
	"github.com/bgricker/tcreport/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record [-- command args...]",
		Short: "Record go test -json output as automated results",
		Long: `Record converts a go test -json stream into the automated results file.

The stream is read from the given command's stdout, from --input, or from
stdin. Test case ids are taken from test names using --case-pattern.`,
		Example: "  tcreport record -- go test -json ./...\n  go test -json ./... | tcreport record",
		RunE:    runRecord,
	}
	cmd.Flags().String("input", "", "read go test -json output from a file")
	cmd.Flags().String("output", "", "results file to write (default: --results)")
	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	rec, err := recorder.New(cfg.CasePattern)
	if err != nil {
		return err
	}

	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return fmt.Errorf("parse --input: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("parse --output: %w", err)
	}
	if outputPath == "" {
		outputPath = discovery.Results(root, cfg.Results)
	}

	var src io.Reader
	var cmdStderr string
	switch {
	case len(args) > 0:
		r := runner.New(runner.Options{Root: root, Stderr: cmd.ErrOrStderr(), Verbose: cfg.Verbose})
		res, err := r.Run(cmd.Context(), args)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			logger.Debug("test command exited non-zero", zap.Int("exit_code", res.ExitCode))
		}
		src = bytes.NewReader(res.Stdout)
		cmdStderr = res.Stderr
	case inputPath != "":
		f, err := os.Open(discovery.Join(root, inputPath))
		if err != nil {
			return fmt.Errorf("open input %q: %w", inputPath, err)
		}
		defer f.Close()
		src = f
	default:
		src = cmd.InOrStdin()
	}

	malformed, err := rec.Parse(src)
	if err != nil {
		return err
	}
	if malformed > 0 {
		logger.Debug("skipped non-JSON lines", zap.Int("lines", malformed))
	}

	records := rec.Records()
	if len(records) == 0 {
		fields := []zap.Field{}
		if cmdStderr != "" {
			fields = append(fields, zap.String("stderr", cmdStderr))
		}
		logger.Warn("no test results found in input; is it go test -json output?", fields...)
	}

	if err := execution.WriteFile(discovery.Join(root, outputPath), records); err != nil {
		return err
	}

	tagged := 0
	for _, r := range records {
		if r.TestCaseID != "" {
			tagged++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d test result(s), %d with a test case id, to %s\n", len(records), tagged, outputPath)
	return nil
}
