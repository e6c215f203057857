package main

import (
	"fmt"

	"github.com/bgricker/tcreport/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("catalog") {
		v, err := flags.GetString("catalog")
		if err != nil {
			return values, fmt.Errorf("parse --catalog: %w", err)
		}
		values.Catalog = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("results") {
		v, err := flags.GetString("results")
		if err != nil {
			return values, fmt.Errorf("parse --results: %w", err)
		}
		values.Results = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("only") {
		v, err := flags.GetStringArray("only")
		if err != nil {
			return values, fmt.Errorf("parse --only: %w", err)
		}
		values.Only = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("case-pattern") {
		v, err := flags.GetString("case-pattern")
		if err != nil {
			return values, fmt.Errorf("parse --case-pattern: %w", err)
		}
		values.CasePattern = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("fail-on-failed") {
		v, err := flags.GetBool("fail-on-failed")
		if err != nil {
			return values, fmt.Errorf("parse --fail-on-failed: %w", err)
		}
		values.FailOnFailed = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
