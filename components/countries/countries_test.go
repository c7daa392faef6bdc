package countries

import (
	"strings"
	"testing"
)

func TestLoadEntries_SkipsCommentsAndDuplicates(t *testing.T) {
	input := strings.NewReader(`
# Comment
United States|US|+1
India|IN|+91
United States|US|+1

Germany|DE|+49
`)

	entries, err := LoadEntries(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "Germany" || entries[1].Name != "India" || entries[2].Name != "United States" {
		t.Fatalf("unexpected ordering: %#v", entries)
	}
}

func TestLoadEntries_RejectsMalformedLines(t *testing.T) {
	for _, raw := range []string{
		"United States|US",
		"United States|USA|+1",
		"United States|US|1",
	} {
		if _, err := LoadEntries(strings.NewReader(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestDefaultEntries_ContainsCommonCountries(t *testing.T) {
	entries, err := DefaultEntries()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) < 150 {
		t.Fatalf("expected a reasonably sized directory, got %d", len(entries))
	}

	for _, tc := range []struct {
		code   string
		prefix string
	}{
		{"US", "+1"},
		{"IN", "+91"},
		{"GB", "+44"},
		{"DE", "+49"},
	} {
		entry, found := ByCode(entries, tc.code)
		if !found {
			t.Fatalf("expected code %q to be present", tc.code)
		}
		if entry.Prefix != tc.prefix {
			t.Fatalf("code %q prefix = %q, want %q", tc.code, entry.Prefix, tc.prefix)
		}
	}
}

func TestByCode_CaseInsensitive(t *testing.T) {
	entries := []Entry{{Name: "India", Code: "IN", Prefix: "+91"}}

	if _, found := ByCode(entries, "in"); !found {
		t.Fatalf("lowercase lookup should resolve")
	}
	if _, found := ByCode(entries, "XX"); found {
		t.Fatalf("unknown code should not resolve")
	}
	if _, found := ByCode(entries, ""); found {
		t.Fatalf("empty code should not resolve")
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	entries := []Entry{
		{Name: "Austria", Code: "AT", Prefix: "+43"},
		{Name: "Australia", Code: "AU", Prefix: "+61"},
		{Name: "Saudi Arabia", Code: "SA", Prefix: "+966"},
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(entries, "au", 10, opts)
	want := []string{"Australia", "Austria", "Saudi Arabia"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %#v", len(want), len(results), results)
	}
	for i := range want {
		if results[i].Name != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q", i, results[i].Name, want[i])
		}
	}
}

func TestSearch_MatchesCodeExactly(t *testing.T) {
	entries := []Entry{
		{Name: "India", Code: "IN", Prefix: "+91"},
		{Name: "Indonesia", Code: "ID", Prefix: "+62"},
	}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(entries, "ID", 10, opts)
	found := false
	for _, entry := range results {
		if entry.Code == "ID" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected exact code match in results: %#v", results)
	}
}

func TestSearch_EmptyQueryReturnsTopByDefault(t *testing.T) {
	entries := []Entry{
		{Name: "Albania", Code: "AL", Prefix: "+355"},
		{Name: "Brazil", Code: "BR", Prefix: "+55"},
	}
	opts := NewOptions()

	results := Search(entries, "", 0, opts)
	if len(results) != 2 {
		t.Fatalf("expected full directory, got %d", len(results))
	}
}

func TestSearchOptions_MapsValueLabelPrefix(t *testing.T) {
	entries := []Entry{{Name: "India", Code: "IN", Prefix: "+91"}}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := SearchOptions(entries, "india", 10, opts)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Value != "IN" || results[0].Label != "India" || results[0].Prefix != "+91" {
		t.Fatalf("unexpected option: %#v", results[0])
	}
}
