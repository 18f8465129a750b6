package evalhand

import "github.com/lox/axiomind/internal/cards"

// EvaluateMany evaluates a batch of hands that all share a common
// prefix of cards (e.g. the same board), returning one HandStrength per
// variant in variants.
//
// This does not reproduce the teacher's perfect-hash lookup table path
// (opencoff/go-chd): those tables are produced by an offline go:generate
// step this exercise cannot run. Instead it caches evaluations by the
// sorted 7-card key, which is a safe optimization when the same
// combination recurs within one call (e.g. range-vs-range equity passes
// sharing hole-card pairs across many opponent combinations) while
// staying exactly equivalent to Evaluate for every input - required by
// the batching contract.
func EvaluateMany(prefix []cards.Card, variants [][]cards.Card) []HandStrength {
	results := make([]HandStrength, len(variants))
	cache := make(map[[7]cards.Card]HandStrength, len(variants))

	full := make([]cards.Card, len(prefix), len(prefix)+2)
	copy(full, prefix)

	for i, variant := range variants {
		hand := append(full[:len(prefix)], variant...)
		key := cacheKey(hand)
		if hs, ok := cache[key]; ok {
			results[i] = hs
			continue
		}
		hs := Evaluate(hand)
		cache[key] = hs
		results[i] = hs
	}
	return results
}

func cacheKey(hand []cards.Card) [7]cards.Card {
	var sorted [7]cards.Card
	copy(sorted[:], hand)
	for i := 1; i < 7; i++ {
		for j := i; j > 0 && sorted[j].Less(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
