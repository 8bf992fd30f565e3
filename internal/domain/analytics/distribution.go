package analytics

import (
	"math"
	"sort"
)

// Distribution converts a category count map into a percentage list
// sorted descending by raw count. The order slice fixes the insertion
// order used for tie-breaking (map iteration order is not stable);
// keys present in counts but missing from order are appended after the
// ordered ones. aiGenerated marks entries produced by the AI layer
// rather than direct user selection.
func Distribution(counts map[string]int, order []string, aiGenerated map[string]bool) []CategoryShare {
	if len(counts) == 0 {
		return nil
	}

	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}

	keys := make([]string, 0, len(counts))
	seen := make(map[string]struct{}, len(counts))
	for _, k := range order {
		if _, ok := counts[k]; ok {
			keys = append(keys, k)
			seen[k] = struct{}{}
		}
	}
	// Remaining keys in sorted order so output is deterministic.
	rest := make([]string, 0, len(counts))
	for k := range counts {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	shares := make([]CategoryShare, 0, len(keys))
	for _, k := range keys {
		count := counts[k]
		if count < 0 {
			count = 0
		}
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(count) / float64(total) * 100))
		}
		shares = append(shares, CategoryShare{
			Key:         k,
			Count:       count,
			Percentage:  pct,
			AIGenerated: aiGenerated[k],
		})
	}

	// Stable sort keeps insertion order for equal counts.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// UnitDistribution builds the per-unit share list from the raw unit
// breakdown, preserving the breakdown's own order for ties.
func UnitDistribution(breakdown []UnitBreakdownEntry) []CategoryShare {
	if len(breakdown) == 0 {
		return nil
	}
	counts := make(map[string]int, len(breakdown))
	order := make([]string, 0, len(breakdown))
	for _, entry := range breakdown {
		if _, ok := counts[entry.Unit]; !ok {
			order = append(order, entry.Unit)
		}
		counts[entry.Unit] += entry.Submitted
	}
	return Distribution(counts, order, nil)
}

// TopKeys returns the category keys of the first n distribution
// entries.
func TopKeys(shares []CategoryShare, n int) []string {
	if n > len(shares) {
		n = len(shares)
	}
	keys := make([]string, 0, n)
	for _, s := range shares[:n] {
		keys = append(keys, s.Key)
	}
	return keys
}
