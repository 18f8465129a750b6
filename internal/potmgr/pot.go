// Package potmgr computes the main pot and ordered side pots from each
// player's total contribution this hand, implementing the layered
// all-in side-pot algorithm.
package potmgr

import "sort"

// Pot is one layer of the pot: an amount and the player indices
// eligible to win it.
type Pot struct {
	Amount   uint64
	Eligible []int
}

// Result is the outcome of FromContributions: the innermost, widest-
// eligibility layer as MainPot, and any narrower-eligibility layers
// above it as SidePots, in increasing-contribution (decreasing-
// eligibility) order.
type Result struct {
	MainPot  Pot
	SidePots []Pot
}

// FromContributions layers per-player total contributions into a main
// pot and zero or more side pots.
//
// Sort contributions c1<=c2<=...<=cN. The innermost layer - c1 from
// every player - is shared by all N players and becomes MainPot. Each
// subsequent distinct contribution level peels off a layer eligible
// only to the players who contributed at least that much. When every
// contribution is equal there is exactly one layer and SidePots is
// empty.
func FromContributions(contributions []uint64) Result {
	n := len(contributions)
	if n == 0 {
		return Result{}
	}

	type indexed struct {
		player int
		amount uint64
	}
	sorted := make([]indexed, n)
	for i, c := range contributions {
		sorted[i] = indexed{player: i, amount: c}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].amount < sorted[j].amount })

	var layers []Pot
	var previous uint64
	for i, s := range sorted {
		if s.amount <= previous {
			continue
		}
		layerAmount := (s.amount - previous) * uint64(n-i)
		eligible := make([]int, 0, n-i)
		for _, rest := range sorted[i:] {
			eligible = append(eligible, rest.player)
		}
		sort.Ints(eligible)
		if layerAmount > 0 {
			layers = append(layers, Pot{Amount: layerAmount, Eligible: eligible})
		}
		previous = s.amount
	}

	if len(layers) == 0 {
		return Result{MainPot: Pot{Amount: 0, Eligible: allPlayers(n)}}
	}

	return Result{MainPot: layers[0], SidePots: layers[1:]}
}

func allPlayers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Total sums the main pot and every side pot.
func (r Result) Total() uint64 {
	total := r.MainPot.Amount
	for _, p := range r.SidePots {
		total += p.Amount
	}
	return total
}
