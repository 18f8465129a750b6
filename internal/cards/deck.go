package cards

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmpty is returned by Deal and Burn when the deck has no cards left.
var ErrEmpty = errors.New("cards: deck is empty")

// Deck is an ordered sequence of the 52 canonical cards plus a read
// cursor and a deterministic RNG seeded from a 64-bit integer.
//
// After Shuffle, the deck's contents are a permutation of the canonical
// 52 and the cursor is reset to zero; Deal advances the cursor.
type Deck struct {
	cards  []Card
	cursor int
	seed   uint64
	rng    *rand.ChaCha8
}

// NewDeck builds an unshuffled deck (canonical suit-then-rank order)
// seeded for reproducible shuffling.
func NewDeck(seed uint64) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		seed:  seed,
		rng:   newChaCha8(seed),
	}
	d.resetCards()
	return d
}

// newChaCha8 expands a 64-bit seed into the 32-byte key NewChaCha8
// requires, via a SplitMix64-style mix so that distinct seeds produce
// uncorrelated keys. This is the Go analogue of seeding a ChaCha20
// stream cipher RNG from a single u64.
func newChaCha8(seed uint64) *rand.ChaCha8 {
	var key [32]byte
	x := seed
	for i := 0; i < 4; i++ {
		x = mix(x + 0x9e3779b97f4a7c15*uint64(i+1))
		for b := 0; b < 8; b++ {
			key[i*8+b] = byte(x >> (8 * b))
		}
	}
	return rand.NewChaCha8(key)
}

// NewChaCha8 expands seed into a ChaCha8 stream-cipher RNG using the
// same key-expansion this package uses internally, for callers (the
// dataset splitter, the simulator) that need the identical
// deterministic stream without owning a full Deck.
func NewChaCha8(seed uint64) *rand.ChaCha8 {
	return newChaCha8(seed)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func (d *Deck) resetCards() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, New(suit, rank))
		}
	}
	d.cursor = 0
}

// Shuffle performs a Fisher-Yates shuffle over the canonical 52-card
// array using the deck's seeded RNG, and resets the read cursor to 0.
// For a fixed seed, a new deck produces the same sequence of
// permutations across platforms and runs; each call continues the RNG
// stream, so successive calls give different permutations (Reset
// restarts the stream).
func (d *Deck) Shuffle() {
	d.resetCards()
	for i := len(d.cards) - 1; i > 0; i-- {
		j := int(d.rng.Uint64() % uint64(i+1))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.cursor = 0
}

// Deal returns the next card and advances the cursor, or ErrEmpty.
func (d *Deck) Deal() (Card, error) {
	if d.cursor >= len(d.cards) {
		return Card{}, ErrEmpty
	}
	c := d.cards[d.cursor]
	d.cursor++
	return c, nil
}

// Burn deals a card and discards it, per the Hold'em dealing procedure.
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.cursor
}

// Reset reshuffles the deck with the same seed it was constructed with,
// restoring it to a fresh, freshly-shuffled 52-card state.
func (d *Deck) Reset() {
	d.rng = newChaCha8(d.seed)
	d.Shuffle()
}

// Seed returns the seed the deck was constructed with.
func (d *Deck) Seed() uint64 {
	return d.seed
}
