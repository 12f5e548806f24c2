// Package districts loads the district-of-residence lookup list: a
// newline-delimited file of place names, sorted before presentation. The list
// is read once per session and is never required for the tool to function.
package districts

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Sentinel entries shown when the list cannot be loaded. The workflow
// continues with the degraded list; the validator still rejects them because
// no real district was selected.
const (
	MissingSentinel = "District list not found"
	ErrorSentinel   = "Error loading districts"
)

// Load reads the district list from path. Blank lines are skipped and the
// result is sorted.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening district list %s: %w", path, err)
	}
	defer f.Close()

	var list []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			list = append(list, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading district list %s: %w", path, err)
	}

	sort.Strings(list)
	return list, nil
}

// LoadOrFallback returns the list from path, or a single-entry sentinel list
// when the file is missing or unreadable. Never fails the caller.
func LoadOrFallback(path string) []string {
	list, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{MissingSentinel}
		}
		return []string{ErrorSentinel}
	}
	if len(list) == 0 {
		return []string{MissingSentinel}
	}
	return list
}
