package search

import "strings"

// OrOperator joins terms in the index tool's query grammar.
const OrOperator = " | "

// Translate turns a raw query into an IndexQuery. A single term is passed
// through as-is; several terms are OR-joined so a file matching any of them
// is returned. Double quotes are escaped, nothing else is touched.
func Translate(query string) IndexQuery {
	raw := strings.TrimSpace(query)
	terms := strings.Fields(raw)
	if len(terms) == 0 {
		return IndexQuery{}
	}

	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = strings.ReplaceAll(t, `"`, `\"`)
	}
	return IndexQuery{
		Raw:        raw,
		Terms:      terms,
		Expression: strings.Join(escaped, OrOperator),
	}
}
