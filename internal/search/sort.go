package search

import "sort"

// SortResults sorts results by score, highest first. Equal scores keep their
// incoming order, which is the index tool's order.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
