// Package recorder turns go test -json streams into execution records.
package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bgricker/tcreport/internal/execution"
)

// DefaultCasePattern extracts catalog identifiers such as TC016 from test names.
const DefaultCasePattern = `TC\d+`

// Event is a single line of go test -json output.
type Event struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Elapsed float64 `json:"Elapsed"`
	Output  string  `json:"Output"`
}

// Recorder accumulates test outcomes in completion order.
type Recorder struct {
	pattern  *regexp.Regexp
	panicked map[testKey]bool
	records  []execution.Record
}

type testKey struct {
	pkg  string
	test string
}

// New creates a Recorder that tags records with the first match of pattern
// in the full test name. An empty pattern uses DefaultCasePattern.
func New(pattern string) (*Recorder, error) {
	if pattern == "" {
		pattern = DefaultCasePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile case pattern %q: %w", pattern, err)
	}
	return &Recorder{pattern: re, panicked: make(map[testKey]bool)}, nil
}

// Process folds one event into the recorder. Package-level events and
// skipped tests produce no record.
func (r *Recorder) Process(e Event) {
	if e.Test == "" {
		return
	}
	key := testKey{pkg: e.Package, test: e.Test}

	switch e.Action {
	case "output":
		if strings.HasPrefix(strings.TrimSpace(e.Output), "panic: ") {
			r.panicked[key] = true
		}
	case "pass":
		r.add(e, execution.StatusPassed)
	case "fail":
		st := execution.StatusFailed
		if r.panicked[key] {
			st = execution.StatusError
		}
		r.add(e, st)
	}
}

func (r *Recorder) add(e Event, st string) {
	class, method := splitTest(e.Test)
	name := e.Test
	if e.Package != "" {
		name = e.Package + "." + e.Test
	}
	r.records = append(r.records, execution.Record{
		TestCaseID: r.pattern.FindString(e.Test),
		TestName:   name,
		Module:     e.Package,
		Class:      class,
		Method:     method,
		Status:     st,
	})
}

// Records returns the records collected so far.
func (r *Recorder) Records() []execution.Record {
	return append([]execution.Record(nil), r.records...)
}

// Parse reads a go test -json stream. Lines that are not JSON events (build
// output, plain logs) are counted and skipped.
func (r *Recorder) Parse(in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var malformed int
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			malformed++
			continue
		}
		r.Process(event)
	}
	if err := scanner.Err(); err != nil {
		return malformed, fmt.Errorf("scanning test output: %w", err)
	}
	return malformed, nil
}

// splitTest separates a subtest path into its parent and leaf names.
func splitTest(name string) (string, string) {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
