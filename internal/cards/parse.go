package cards

import "fmt"

// ParseCard parses shorthand rank+suit notation ("As", "Td", "2c") into
// a Card: rank is one of 2-9, T, J, Q, K, A; suit is one of c, d, h, s
// (case-insensitive), grounded on the classic poker-tool notation the
// teacher's evaluator package parsed the same way.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("cards: invalid card notation %q", s)
	}
	rank, ok := parseRankGlyph(s[0])
	if !ok {
		return Card{}, fmt.Errorf("cards: invalid rank %q in %q", s[0], s)
	}
	suit, ok := parseSuitGlyph(s[1])
	if !ok {
		return Card{}, fmt.Errorf("cards: invalid suit %q in %q", s[1], s)
	}
	return New(suit, rank), nil
}

// ParseCards parses a space-separated sequence of shorthand cards.
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			c, err := ParseCard(s[start:i])
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
			start = -1
		}
	}
	return cards, nil
}

func parseRankGlyph(c byte) (Rank, bool) {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(c - '0'), true
	case 'T', 't':
		return Ten, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	default:
		return 0, false
	}
}

func parseSuitGlyph(c byte) (Suit, bool) {
	switch c {
	case 'c', 'C':
		return Clubs, true
	case 'd', 'D':
		return Diamonds, true
	case 'h', 'H':
		return Hearts, true
	case 's', 'S':
		return Spades, true
	default:
		return 0, false
	}
}
