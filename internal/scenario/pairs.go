package scenario

import "github.com/samber/lo"

// AllPairs returns every pair (items[i], items[j]) with i < j, in order
func AllPairs[T any](items []T) [][2]T {
	var pairs [][2]T
	for i := 0; i < len(items)-1; i++ {
		for j := i + 1; j < len(items); j++ {
			pairs = append(pairs, [2]T{items[i], items[j]})
		}
	}
	return pairs
}

// StartsSameLetter reports whether two ids share their first character.
// Empty ids never match.
func StartsSameLetter(a, b string) bool {
	return a != "" && b != "" && a[0] == b[0]
}

// HasCollision reports whether any two ids start with the same letter
func HasCollision(ids []string) bool {
	return lo.SomeBy(AllPairs(ids), func(p [2]string) bool {
		return StartsSameLetter(p[0], p[1])
	})
}
