package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// TypeManual marks a test case that needs a human to verify it.
	TypeManual = "manual"
	// TypeAutomatedUnit marks a test case satisfied by automated unit tests.
	TypeAutomatedUnit = "automated-unit"
)

var (
	// ErrNotFound indicates the catalog file does not exist.
	ErrNotFound = errors.New("catalog not found")
	// ErrNotSequence indicates the top-level tests field is not a list.
	ErrNotSequence = errors.New("catalog does not contain a 'tests' list")
)

var (
	manualTypes    = map[string]struct{}{TypeManual: {}}
	automatedTypes = map[string]struct{}{TypeAutomatedUnit: {}, "auto-unittest": {}}
)

// Entry is a single declared test case.
type Entry struct {
	ID   string `yaml:"id" json:"id"`
	Type string `yaml:"type" json:"type"`
}

// Valid reports whether both identifier and type are present.
func (e Entry) Valid() bool {
	return e.ID != "" && e.Type != ""
}

// IsManual reports whether the entry's type is a manual type.
func (e Entry) IsManual() bool {
	_, ok := manualTypes[e.Type]
	return ok
}

// IsAutomated reports whether the entry's type is an automated unit type.
func (e Entry) IsAutomated() bool {
	_, ok := automatedTypes[e.Type]
	return ok
}

// Load reads the catalog at path.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode parses a catalog document. Elements of the tests list that are not
// mappings are kept as empty (invalid) entries so one bad row does not hide
// the rest.
func Decode(r io.Reader, displayPath string) ([]Entry, error) {
	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse catalog %q: %w", displayPath, err)
	}

	switch doc.Tests.Kind {
	case 0:
		return nil, nil
	case yaml.SequenceNode:
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotSequence, displayPath)
	}

	entries := make([]Entry, 0, len(doc.Tests.Content))
	for _, node := range doc.Tests.Content {
		var entry Entry
		if node.Kind == yaml.MappingNode {
			// A type error leaves the fields that did decode in place.
			if err := node.Decode(&entry); err != nil {
				var typeErr *yaml.TypeError
				if !errors.As(err, &typeErr) {
					entry = Entry{}
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type catalogDocument struct {
	Tests yaml.Node `yaml:"tests"`
}
