package countries

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/countries.txt
var dataFS embed.FS

const defaultListPath = "data/countries.txt"

// Entry is one immutable row of the country directory.
type Entry struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Prefix string `json:"prefix"`
}

var (
	defaultOnce    sync.Once
	defaultEntries []Entry
	defaultErr     error
)

// DefaultEntries returns the embedded directory sorted by display name.
// The returned slice is a copy; callers may reorder it freely.
func DefaultEntries() ([]Entry, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		entries, err := LoadEntries(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultEntries = entries
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Entry{}, defaultEntries...), nil
}

// LoadEntries parses a pipe-delimited directory (name|ISO-2|prefix).
// Blank lines and #-comments are skipped; duplicate codes keep the
// first occurrence. Results are sorted by display name.
func LoadEntries(r io.Reader) ([]Entry, error) {
	if r == nil {
		return nil, fmt.Errorf("countries: missing reader")
	}

	scanner := bufio.NewScanner(r)
	entries := make([]Entry, 0, 200)
	seen := map[string]struct{}{}
	line := 0

	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		parts := strings.Split(raw, "|")
		if len(parts) != 3 {
			return nil, fmt.Errorf("countries: line %d: expected name|code|prefix, got %q", line, raw)
		}
		entry := Entry{
			Name:   strings.TrimSpace(parts[0]),
			Code:   strings.ToUpper(strings.TrimSpace(parts[1])),
			Prefix: strings.TrimSpace(parts[2]),
		}
		if entry.Name == "" || len(entry.Code) != 2 || !strings.HasPrefix(entry.Prefix, "+") {
			return nil, fmt.Errorf("countries: line %d: malformed entry %q", line, raw)
		}
		if _, ok := seen[entry.Code]; ok {
			continue
		}
		seen[entry.Code] = struct{}{}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// ByCode resolves an ISO-2 code (case-insensitive) against the
// directory. The second return is false when the code is unknown.
func ByCode(entries []Entry, code string) (Entry, bool) {
	needle := strings.ToUpper(strings.TrimSpace(code))
	if needle == "" {
		return Entry{}, false
	}
	for _, entry := range entries {
		if entry.Code == needle {
			return entry, true
		}
	}
	return Entry{}, false
}
