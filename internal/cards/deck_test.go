package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckShuffleIsDeterministic(t *testing.T) {
	d1 := NewDeck(42)
	d1.Shuffle()
	d2 := NewDeck(42)
	d2.Shuffle()

	for i := 0; i < 52; i++ {
		c1, err := d1.Deal()
		require.NoError(t, err)
		c2, err := d2.Deal()
		require.NoError(t, err)
		assert.Equal(t, c1, c2, "card %d should match across identical-seed shuffles", i)
	}
}

func TestDeckShuffleIsAPermutation(t *testing.T) {
	d := NewDeck(7)
	d.Shuffle()

	seen := make(map[Card]bool, 52)
	for i := 0; i < 52; i++ {
		c, err := d.Deal()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %v dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	_, err := d.Deal()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDeckDifferentSeedsDiverge(t *testing.T) {
	d1 := NewDeck(1)
	d1.Shuffle()
	d2 := NewDeck(2)
	d2.Shuffle()

	diff := 0
	for i := 0; i < 10; i++ {
		c1, _ := d1.Deal()
		c2, _ := d2.Deal()
		if c1 != c2 {
			diff++
		}
	}
	assert.Greater(t, diff, 0, "first 10 cards from different seeds should differ")
}

func TestDeckBurnAdvancesCursor(t *testing.T) {
	d := NewDeck(1)
	d.Shuffle()
	require.Equal(t, 52, d.Remaining())
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())
}

func TestDeckResetReproducesSameShuffle(t *testing.T) {
	d := NewDeck(99)
	d.Shuffle()
	first, _ := d.Deal()

	d.Reset()
	second, _ := d.Deal()
	assert.Equal(t, first, second)
}

func TestCardJSONRoundTrip(t *testing.T) {
	c := New(Hearts, Ace)
	data, err := c.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"Hearts","rank":"Ace"}`, string(data))

	var out Card
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, c, out)
}
