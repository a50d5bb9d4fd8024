package naming

import "sort"

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Ensure a is the shorter string for space optimization
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Closest returns the candidates within a third of word's length (at least
// one edit) of word, nearest first. Ties keep candidate order.
func Closest(word string, candidates []string) []string {
	limit := max(1, len(word)/3)

	type scored struct {
		name string
		dist int
	}

	var hits []scored

	for _, c := range candidates {
		if d := Levenshtein(word, c); d <= limit {
			hits = append(hits, scored{name: c, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}

		return c
	}

	if b < c {
		return b
	}

	return c
}
