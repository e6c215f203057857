package status

import (
	"fmt"

	"github.com/bgricker/tcreport/internal/catalog"
	"github.com/bgricker/tcreport/internal/execution"
)

// Code is the resolved outcome of a catalog entry.
type Code string

const (
	Manual      Code = "manual"
	Passed      Code = "passed"
	Failed      Code = "failed"
	NotFound    Code = "not_found"
	UnknownType Code = "unknown_type"
	Invalid     Code = "invalid"
)

// Status pairs a resolution code with its display text.
type Status struct {
	Code Code   `json:"code"`
	Text string `json:"text"`
}

// Resolve determines the status of entry given the execution index. Manual
// entries are never resolved from records, and any failed or erroring record
// fails an automated entry even if others passed.
func Resolve(entry catalog.Entry, idx execution.Index) Status {
	if !entry.Valid() {
		return Status{Code: Invalid, Text: "Invalid test entry"}
	}
	switch {
	case entry.IsManual():
		return Status{Code: Manual, Text: "🫱 Manual test needed"}
	case entry.IsAutomated():
		return resolveAutomated(idx.Lookup(entry.ID))
	default:
		return Status{Code: UnknownType, Text: fmt.Sprintf("Unknown type '%s'", entry.Type)}
	}
}

func resolveAutomated(records []execution.Record) Status {
	if len(records) == 0 {
		return notFound()
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.Status] = struct{}{}
	}

	_, failed := seen[execution.StatusFailed]
	_, errored := seen[execution.StatusError]
	if failed || errored {
		return Status{Code: Failed, Text: "❌ Failed"}
	}
	if _, ok := seen[execution.StatusPassed]; ok {
		return Status{Code: Passed, Text: "✅ Passed"}
	}
	return notFound()
}

func notFound() Status {
	return Status{Code: NotFound, Text: "Not found"}
}
