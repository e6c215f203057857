package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoCatalog indicates that no catalog file was found during discovery.
var ErrNoCatalog = errors.New("no test catalog found")

// DefaultResults is the results file used when none is configured.
const DefaultResults = "result_test_auto.json"

// Catalog returns the catalog file path. An explicit path is validated and
// returned as given. Otherwise test_list.yaml or test_list.yml under root is
// used, preferring the lexicographically first match.
func Catalog(root, explicit string) (string, error) {
	if explicit != "" {
		return resolveExplicit(root, explicit)
	}

	var matches []string
	for _, pattern := range []string{"test_list.yaml", "test_list.yml"} {
		found, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return "", fmt.Errorf("glob %q: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w in %s (expected test_list.yaml)", ErrNoCatalog, root)
	}
	sort.Strings(matches)
	return mustRelOrClean(root, matches[0]), nil
}

// Results returns the results file path without checking that it exists;
// a missing results file is not an error.
func Results(root, explicit string) string {
	if explicit == "" {
		explicit = DefaultResults
	}
	return mustRelOrClean(root, Join(root, explicit))
}

// Join resolves a path returned by this package against root.
func Join(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func resolveExplicit(root, input string) (string, error) {
	cleaned := Join(root, input)
	info, err := os.Stat(cleaned)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %q does not exist", ErrNoCatalog, input)
		}
		return "", fmt.Errorf("stat %q: %w", input, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("catalog %q is a directory", input)
	}
	return mustRelOrClean(root, cleaned), nil
}

func mustRelOrClean(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}
