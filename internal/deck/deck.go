package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
// In single-hand play this indicates a logic error.
var ErrEmptyDeck = errors.New("no cards left in the deck")

// Deck is an ordered pile of cards. The top of the deck is the last card.
type Deck struct {
	cards []Card
	stack []Card // forced draw order for stacked decks
	rng   *rand.Rand
}

// NewDeck creates a new standard 52-card deck in suit/rank order
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewStackedDeck creates a deck whose next draws return top, in order.
// The rest of a standard deck sits underneath, so it still holds 52
// unique cards. Reset restores the same stacking and Shuffle keeps it.
func NewStackedDeck(top ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		stack: append([]Card(nil), top...),
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]

	stacked := make(map[Card]bool, len(d.stack))
	for _, c := range d.stack {
		stacked[c] = true
	}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			if c := NewCard(suit, rank); !stacked[c] {
				d.cards = append(d.cards, c)
			}
		}
	}
	for i := len(d.stack) - 1; i >= 0; i-- {
		d.cards = append(d.cards, d.stack[i])
	}
}

// Shuffle permutes the deck in place (Fisher-Yates). A deck without an
// rng keeps its order.
func (d *Deck) Shuffle() {
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// MustDraw draws a card and panics with ErrEmptyDeck if there are none
func (d *Deck) MustDraw() Card {
	card, err := d.Draw()
	if err != nil {
		panic(err)
	}
	return card
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the deck, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Reset discards the current cards and rebuilds a full, unshuffled deck
func (d *Deck) Reset() {
	d.fill()
}
