package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tcreport",
		Short:         "Tcreport joins a test case catalog with automated test results",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runReport,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("catalog", "", "test case catalog (default test_list.yaml)")
	persistent.String("results", "", "automated results file (default result_test_auto.json)")
	persistent.StringArray("only", nil, "only report test cases whose id matches (repeatable)")
	persistent.String("format", "pretty", "output format (pretty|json)")
	persistent.String("case-pattern", "", `regexp extracting test case ids from test names (default "TC\d+")`)
	persistent.Bool("fail-on-failed", false, "exit non-zero when an automated test case failed")
	persistent.BoolP("verbose", "v", false, "log debug details to stderr")

	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newRecordCmd())

	return cmd
}
