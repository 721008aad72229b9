package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// BlackjackValue is the best possible hand value
	BlackjackValue = 21

	// TargetHandSize is the number of cards each side is dealt
	TargetHandSize = 2

	// aceReduction is the difference between an Ace counted high and low
	aceReduction = 10
)

// Hand is an ordered set of cards held by one participant
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding cards, mostly useful in tests
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Reset empties the hand
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
}

// Value returns the blackjack value, counting as many Aces low as needed
// to stay at or under 21. It is recomputed on every call.
func (h *Hand) Value() int {
	total, _ := h.value()
	return total
}

func (h *Hand) value() (total, softAces int) {
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for total > BlackjackValue && softAces > 0 {
		total -= aceReduction
		softAces--
	}
	return total, softAces
}

// IsSoft reports whether at least one Ace is still counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := h.value()
	return soft > 0
}

// IsBlackjack reports a natural: exactly two cards worth 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == TargetHandSize && h.Value() == BlackjackValue
}

// IsBust reports whether the hand is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

// Count returns the number of cards in the hand
func (h *Hand) Count() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// String lists the card identifiers, e.g. "ace_of_spades, king_of_hearts"
func (h *Hand) String() string {
	names := make([]string, len(h.cards))
	for i, c := range h.cards {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}
