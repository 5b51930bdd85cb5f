package search

import (
	"encoding/json"
	"math"
	"path/filepath"
	"time"
)

// IndexQuery is a user query translated into the index tool's grammar.
type IndexQuery struct {
	// Raw is the trimmed query as typed.
	Raw string
	// Terms are the whitespace-separated words of Raw.
	Terms []string
	// Expression is what gets handed to the index tool.
	Expression string
}

// Empty reports whether the query has no terms.
func (q IndexQuery) Empty() bool {
	return len(q.Terms) == 0
}

// Result is one ranked file hit.
type Result struct {
	Path     string
	Filename string
	Modified time.Time
	Score    float64
}

type resultJSON struct {
	Path     string  `json:"path"`
	Filename string  `json:"filename"`
	Modified string  `json:"modified"`
	Score    float64 `json:"score"`
}

// MarshalJSON emits the shape consumed by the result list UI.
func (r Result) MarshalJSON() ([]byte, error) {
	name := r.Filename
	if name == "" {
		name = filepath.Base(r.Path)
	}
	return json.Marshal(resultJSON{
		Path:     r.Path,
		Filename: name,
		Modified: r.Modified.Format(time.RFC3339),
		Score:    roundScore(r.Score),
	})
}

func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}

// Status says why an Outcome looks the way it does.
type Status string

const (
	StatusOK             Status = "ok"
	StatusNoMatches      Status = "no_matches"
	StatusNoDirectories  Status = "no_directories"
	StatusProviderFailed Status = "provider_failed"
)

// Outcome is the result of one pipeline run. Results is never nil.
type Outcome struct {
	Results []Result
	Status  Status
	// Err is set when Status is StatusProviderFailed or StatusNoDirectories.
	Err error
	// Candidates is the number of raw hits the index tool returned.
	Candidates int
}
