package report

import (
	"fmt"

	"github.com/bgricker/tcreport/internal/catalog"
	"github.com/bgricker/tcreport/internal/execution"
	"github.com/bgricker/tcreport/internal/status"
)

// NotApplicable is printed in place of a percentage with a zero denominator.
const NotApplicable = "N/A"

// EntryStatus captures the resolved status of a single catalog entry.
type EntryStatus struct {
	ID      string        `json:"id"`
	Type    string        `json:"type"`
	Status  status.Status `json:"status"`
	Records int           `json:"records"`
}

// Counters aggregates a report run.
type Counters struct {
	Total     int `json:"total"`
	Manual    int `json:"manual"`
	Automated int `json:"automated"`
	Other     int `json:"other"`

	WithRecords int `json:"with_records"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	NotFound    int `json:"not_found"`
}

// Report is the per-entry listing plus its counters.
type Report struct {
	Entries  []EntryStatus `json:"entries"`
	Counters Counters      `json:"summary"`
}

// Build resolves every entry in catalog order and computes the counters.
func Build(entries []catalog.Entry, idx execution.Index) Report {
	rep := Report{Entries: make([]EntryStatus, 0, len(entries))}
	c := &rep.Counters

	for _, entry := range entries {
		st := status.Resolve(entry, idx)
		records := len(idx.Lookup(entry.ID))
		rep.Entries = append(rep.Entries, EntryStatus{
			ID:      entry.ID,
			Type:    entry.Type,
			Status:  st,
			Records: records,
		})

		c.Total++
		switch {
		case entry.IsManual():
			c.Manual++
		case entry.IsAutomated():
			c.Automated++
			if records > 0 {
				c.WithRecords++
			}
			switch st.Code {
			case status.Passed:
				c.Passed++
			case status.Failed:
				c.Failed++
			default:
				c.NotFound++
			}
		default:
			c.Other++
		}
	}

	return rep
}

// Percent formats count/total as a percentage with one decimal place.
func Percent(count, total int) string {
	if total == 0 {
		return NotApplicable
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
