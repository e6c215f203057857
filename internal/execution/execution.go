package execution

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Outcome values written by the recorder and understood by the resolver.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
	StatusError  = "error"
)

// ErrNotFound indicates the results file does not exist.
var ErrNotFound = errors.New("results not found")

// Record is the outcome of one executed test, optionally tagged with the
// catalog identifier it satisfies.
type Record struct {
	TestCaseID string `json:"test_case_id,omitempty"`
	TestName   string `json:"test_name,omitempty"`
	Module     string `json:"module,omitempty"`
	Class      string `json:"class,omitempty"`
	Method     string `json:"method,omitempty"`
	Status     string `json:"status"`
}

// UnmarshalJSON decodes a record leniently. Scalar fields of any JSON type
// become strings; null, arrays, objects and non-object records decode as
// empty, so a bad record is dropped at indexing instead of failing the run.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*r = Record{}
		return nil
	}
	*r = Record{
		TestCaseID: scalarString(fields["test_case_id"]),
		TestName:   scalarString(fields["test_name"]),
		Module:     scalarString(fields["module"]),
		Class:      scalarString(fields["class"]),
		Method:     scalarString(fields["method"]),
		Status:     scalarString(fields["status"]),
	}
	return nil
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Document is the on-disk results schema.
type Document struct {
	Tests []Record `json:"tests"`
}

// Index groups records by test case identifier, preserving input order.
type Index map[string][]Record

// NewIndex groups records by identifier. Records without one are dropped.
func NewIndex(records []Record) Index {
	idx := make(Index)
	for _, rec := range records {
		if rec.TestCaseID == "" {
			continue
		}
		idx[rec.TestCaseID] = append(idx[rec.TestCaseID], rec)
	}
	return idx
}

// Lookup returns the records for id, or nil when none exist.
func (idx Index) Lookup(id string) []Record {
	if idx == nil {
		return nil
	}
	return idx[id]
}

// Load reads the results file at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open results %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode parses a results document.
func Decode(r io.Reader, displayPath string) ([]Record, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse results %q: %w", displayPath, err)
	}
	return doc.Tests, nil
}

// Write encodes records as a results document.
func Write(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Tests: records})
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results %q: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write results %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close results %q: %w", path, err)
	}
	return nil
}
