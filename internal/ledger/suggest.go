package ledger

import "strings"

// Named is anything that can appear in an autocomplete list.
type Named interface {
	DisplayName() string
}

// FilterSuggestions returns the candidates whose name contains the query as a
// case-insensitive substring, preserving input order. An empty or
// whitespace-only query hides suggestions entirely, so it yields nil rather
// than the full list. The filter is pure; callers run it on every keystroke.
func FilterSuggestions[T Named](query string, candidates []T) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []T
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate.DisplayName()), q) {
			matches = append(matches, candidate)
		}
	}
	return matches
}
