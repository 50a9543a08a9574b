package scoring

import (
	"sort"
)

// SortEntries orders entries fastest first; equal times keep the earlier
// completion first.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CompletionTime != entries[j].CompletionTime {
			return entries[i].CompletionTime < entries[j].CompletionTime
		}
		return entries[i].CompletedAt.Before(entries[j].CompletedAt)
	})
}

// TopEntries returns the n fastest entries without modifying entries.
func TopEntries(entries []Entry, n int) []Entry {
	// Make a copy to avoid modifying the original slice.
	entriesCopy := make([]Entry, len(entries))
	copy(entriesCopy, entries)
	SortEntries(entriesCopy)

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// Rank is the 1-based position completion would take among entries.
func Rank(entries []Entry, completion int64) int {
	rank := 1
	for _, e := range entries {
		if e.CompletionTime <= completion {
			rank++
		}
	}
	return rank
}
