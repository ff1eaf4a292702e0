package scraper

import (
	"iter"
	"strings"
)

const (
	minTermWords = 2
	maxTermWords = 3
)

// SearchTerms yields every combination of 2 up to 3 keywords, joined by
// spaces and kept in their configured order. Pairs come first, then
// triples, each in index order. Fewer than two keywords yield nothing.
func SearchTerms(keywords []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		limit := min(len(keywords), maxTermWords)

		for size := minTermWords; size <= limit; size++ {
			if !combinations(len(keywords), size, func(idx []int) bool {
				words := make([]string, len(idx))
				for i, j := range idx {
					words[i] = keywords[j]
				}
				return yield(strings.Join(words, " "))
			}) {
				return
			}
		}
	}
}

// combinations calls fn with each k-index combination of n positions in
// lexicographic order. It stops early and returns false once fn does.
func combinations(n, k int, fn func([]int) bool) bool {
	if k > n || k <= 0 {
		return true
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return false
		}

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
