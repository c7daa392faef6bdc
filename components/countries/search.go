package countries

import (
	"sort"
	"strings"
)

// Search filters the directory by a case-insensitive query against the
// display name and ISO-2 code. Name-prefix matches sort before plain
// substring matches; ties break on display name.
func Search(entries []Entry, query string, limit int, opts Options) []Entry {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(entries) <= limit {
				return append([]Entry{}, entries...)
			}
			return append([]Entry{}, entries[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedEntry, 0, 32)
	for _, entry := range entries {
		lowerName := strings.ToLower(entry.Name)
		if !strings.Contains(lowerName, q) && !strings.EqualFold(entry.Code, query) {
			continue
		}
		matches = append(matches, matchedEntry{
			entry:    entry,
			isPrefix: strings.HasPrefix(lowerName, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].entry.Name < matches[j].entry.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Entry, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.entry)
	}
	return out
}

// Option is the JSON shape form selectors consume.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Prefix string `json:"prefix"`
}

// SearchOptions maps search results into selector options: the ISO-2
// code as value, the display name as label.
func SearchOptions(entries []Entry, query string, limit int, opts Options) []Option {
	results := Search(entries, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, entry := range results {
		out = append(out, Option{Value: entry.Code, Label: entry.Name, Prefix: entry.Prefix})
	}
	return out
}

type matchedEntry struct {
	entry    Entry
	isPrefix bool
}
