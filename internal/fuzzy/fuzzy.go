// Package fuzzy ranks near-miss names for "Did you mean" suggestions
// on unknown commands and flags.
package fuzzy

import (
	"sort"
	"strings"
)

// minInputLength guards against suggesting anything for one-letter
// typos, where nearly every candidate is within distance.
const minInputLength = 2

// FindBestCommand returns the closest command name within maxDistance
// edits of input, or "" when nothing qualifies. Comparison is case
// insensitive; the returned name keeps its declared casing.
func FindBestCommand(input string, commands []string, maxDistance int) string {
	ranked := Rank(input, commands, maxDistance)
	if len(ranked) == 0 {
		return ""
	}
	return ranked[0]
}

// FindBestFlag is FindBestCommand over flag names.
func FindBestFlag(input string, flags []string, maxDistance int) string {
	return FindBestCommand(input, flags, maxDistance)
}

// Rank returns every candidate within maxDistance of input, best
// first. Ties break toward longer shared prefixes, then toward the
// lexically smaller name so output is stable.
func Rank(input string, candidates []string, maxDistance int) []string {
	if len(input) < minInputLength {
		return nil
	}
	needle := strings.ToLower(input)

	type scored struct {
		name     string
		distance int
		prefix   int
	}
	var hits []scored
	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if lower == needle {
			continue
		}
		d := boundedDistance(needle, lower, maxDistance)
		if d > maxDistance {
			continue
		}
		hits = append(hits, scored{candidate, d, sharedPrefix(needle, lower)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix > hits[j].prefix
		}
		return hits[i].name < hits[j].name
	})

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	return names
}

// boundedDistance computes Levenshtein distance with a cutoff: once
// the running minimum exceeds limit the result is reported as limit+1.
func boundedDistance(a, b string, limit int) int {
	if abs(len(a)-len(b)) > limit {
		return limit + 1
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func sharedPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
