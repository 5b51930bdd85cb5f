package search

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// fold normalizes to NFC before case folding; Spotlight hands back
// decomposed (NFD) names while typed queries are usually composed.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// NameMatch scores how well query matches the file name or a parent folder:
//
//	exact stem 1.0, stem prefix 0.9, stem substring 0.7,
//	parent folder exact 0.6, parent folder substring 0.4, else 0.
//
// Folders are checked from the closest parent upward.
func NameMatch(path, query string) float64 {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	base := fold(filepath.Base(path))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	switch {
	case stem == q:
		return 1.0
	case strings.HasPrefix(stem, q):
		return 0.9
	case strings.Contains(stem, q):
		return 0.7
	}

	folders := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for i := len(folders) - 1; i >= 0; i-- {
		f := fold(folders[i])
		if f == "" {
			continue
		}
		if f == q {
			return 0.6
		}
		if strings.Contains(f, q) {
			return 0.4
		}
	}
	return 0
}
