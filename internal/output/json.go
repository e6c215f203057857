package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/tcreport/internal/report"
)

// JSONRenderer emits the report as structured data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures JSON output schema.
type Report struct {
	Entries  []report.EntryStatus `json:"entries"`
	Summary  Summary              `json:"summary"`
	Warnings []string             `json:"warnings,omitempty"`
}

// Summary is the counters plus their formatted percentages.
type Summary struct {
	report.Counters
	Percentages map[string]string `json:"percentages"`
}

// NewReport converts a built report into the JSON schema.
func NewReport(rep report.Report, warnings []string) Report {
	c := rep.Counters
	entries := rep.Entries
	if entries == nil {
		entries = []report.EntryStatus{}
	}
	return Report{
		Entries: entries,
		Summary: Summary{
			Counters: c,
			Percentages: map[string]string{
				"manual":       report.Percent(c.Manual, c.Total),
				"automated":    report.Percent(c.Automated, c.Total),
				"other":        report.Percent(c.Other, c.Total),
				"with_records": report.Percent(c.WithRecords, c.Automated),
				"passed":       report.Percent(c.Passed, c.Automated),
				"failed":       report.Percent(c.Failed, c.Automated),
				"not_found":    report.Percent(c.NotFound, c.Automated),
			},
		},
		Warnings: warnings,
	}
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(rep Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
