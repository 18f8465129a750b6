package evalhand

import (
	"testing"

	"github.com/lox/axiomind/internal/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStraightFlush(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Hearts, cards.Ten),
		cards.New(cards.Hearts, cards.Jack),
		cards.New(cards.Hearts, cards.Queen),
		cards.New(cards.Hearts, cards.King),
		cards.New(cards.Hearts, cards.Ace),
		cards.New(cards.Clubs, cards.Two),
		cards.New(cards.Diamonds, cards.Three),
	}
	hs := Evaluate(hand)
	require.Equal(t, StraightFlush, hs.Category)
	assert.Equal(t, cards.Ace, hs.Kickers[0])
}

func TestEvaluateWheelStraight(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Clubs, cards.Ace),
		cards.New(cards.Diamonds, cards.Two),
		cards.New(cards.Hearts, cards.Three),
		cards.New(cards.Spades, cards.Four),
		cards.New(cards.Clubs, cards.Five),
		cards.New(cards.Diamonds, cards.Nine),
		cards.New(cards.Hearts, cards.King),
	}
	hs := Evaluate(hand)
	require.Equal(t, Straight, hs.Category)
	assert.Equal(t, cards.Five, hs.Kickers[0], "wheel ranks as five-high")
}

func TestEvaluateFullHouseTwoTripsUsesLowerAsPair(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Clubs, cards.King),
		cards.New(cards.Diamonds, cards.King),
		cards.New(cards.Hearts, cards.King),
		cards.New(cards.Clubs, cards.Queen),
		cards.New(cards.Diamonds, cards.Queen),
		cards.New(cards.Hearts, cards.Queen),
		cards.New(cards.Spades, cards.Two),
	}
	hs := Evaluate(hand)
	require.Equal(t, FullHouse, hs.Category)
	assert.Equal(t, cards.King, hs.Kickers[0])
	assert.Equal(t, cards.Queen, hs.Kickers[3])
}

func TestEvaluateQuads(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Clubs, cards.Nine),
		cards.New(cards.Diamonds, cards.Nine),
		cards.New(cards.Hearts, cards.Nine),
		cards.New(cards.Spades, cards.Nine),
		cards.New(cards.Clubs, cards.King),
		cards.New(cards.Diamonds, cards.Two),
		cards.New(cards.Hearts, cards.Three),
	}
	hs := Evaluate(hand)
	require.Equal(t, Quads, hs.Category)
	assert.Equal(t, cards.King, hs.Kickers[4])
}

func TestEvaluateQuadsKickerMayBeAPairedRank(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Clubs, cards.Two),
		cards.New(cards.Diamonds, cards.Two),
		cards.New(cards.Hearts, cards.Two),
		cards.New(cards.Spades, cards.Two),
		cards.New(cards.Clubs, cards.King),
		cards.New(cards.Diamonds, cards.King),
		cards.New(cards.Hearts, cards.Queen),
	}
	hs := Evaluate(hand)
	require.Equal(t, Quads, hs.Category)
	assert.Equal(t, cards.King, hs.Kickers[4], "kicker must be the highest remaining rank even though it is itself paired")
}

func TestEvaluateTwoPairKickerMayComeFromThirdPair(t *testing.T) {
	hand := []cards.Card{
		cards.New(cards.Clubs, cards.Ace),
		cards.New(cards.Diamonds, cards.Ace),
		cards.New(cards.Hearts, cards.King),
		cards.New(cards.Spades, cards.King),
		cards.New(cards.Clubs, cards.Queen),
		cards.New(cards.Diamonds, cards.Queen),
		cards.New(cards.Hearts, cards.Jack),
	}
	hs := Evaluate(hand)
	require.Equal(t, TwoPair, hs.Category)
	assert.Equal(t, cards.Ace, hs.Kickers[0])
	assert.Equal(t, cards.King, hs.Kickers[2])
	assert.Equal(t, cards.Queen, hs.Kickers[4], "kicker must be the highest remaining rank even though it is itself a pair")
}

func TestCompareOrdersByCategoryThenKickers(t *testing.T) {
	pair := HandStrength{Category: Pair, Kickers: [5]cards.Rank{cards.Two, cards.Two, cards.Ace, cards.King, cards.Queen}}
	twoPair := HandStrength{Category: TwoPair, Kickers: [5]cards.Rank{cards.Three, cards.Three, cards.Two, cards.Two, cards.Four}}
	assert.True(t, pair.Less(twoPair))
	assert.False(t, twoPair.Less(pair))
	assert.Equal(t, 0, pair.Compare(pair))
}

func TestEvaluateManyMatchesEvaluate(t *testing.T) {
	board := []cards.Card{
		cards.New(cards.Clubs, cards.Two),
		cards.New(cards.Diamonds, cards.Seven),
		cards.New(cards.Hearts, cards.Nine),
		cards.New(cards.Spades, cards.Jack),
		cards.New(cards.Clubs, cards.King),
	}
	variants := [][]cards.Card{
		{cards.New(cards.Hearts, cards.Ace), cards.New(cards.Hearts, cards.King)},
		{cards.New(cards.Diamonds, cards.Ace), cards.New(cards.Diamonds, cards.King)},
		{cards.New(cards.Hearts, cards.Ace), cards.New(cards.Hearts, cards.King)}, // repeat, exercises cache
	}
	results := EvaluateMany(board, variants)
	require.Len(t, results, 3)
	for i, v := range variants {
		hand := append(append([]cards.Card{}, board...), v...)
		assert.Equal(t, 0, results[i].Compare(Evaluate(hand)))
	}
	assert.Equal(t, 0, results[0].Compare(results[2]))
}
