package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/render"
)

// Role tags a participant as the player or the dealer. Both roles share
// the same Participant type.
type Role int

const (
	RolePlayer Role = iota
	RoleDealer
)

// String returns the role name
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleDealer:
		return "Dealer"
	default:
		return "Unknown"
	}
}

// Participant owns a hand, a standing flag and the visuals created for
// its cards.
type Participant struct {
	role     Role
	hand     *Hand
	standing bool
	visuals  []render.Handle
	surface  render.Surface
}

// NewParticipant creates a participant whose visuals are released through
// surface.
func NewParticipant(role Role, surface render.Surface) *Participant {
	return &Participant{
		role:    role,
		hand:    &Hand{},
		surface: surface,
	}
}

// Role returns the participant's role
func (p *Participant) Role() Role {
	return p.role
}

// Hand returns the participant's hand
func (p *Participant) Hand() *Hand {
	return p.hand
}

// Hit adds a card to the hand
func (p *Participant) Hit(c deck.Card) {
	p.hand.AddCard(c)
}

// Stand marks the participant as standing until the next Reset
func (p *Participant) Stand() {
	p.standing = true
}

// IsStanding reports whether the participant has stood
func (p *Participant) IsStanding() bool {
	return p.standing
}

// AddVisual takes ownership of a card visual
func (p *Participant) AddVisual(h render.Handle) {
	p.visuals = append(p.visuals, h)
}

// Visual returns the i-th card visual
func (p *Participant) Visual(i int) (render.Handle, bool) {
	if i < 0 || i >= len(p.visuals) {
		return render.NoHandle, false
	}
	return p.visuals[i], true
}

// Visuals returns a copy of the owned visuals
func (p *Participant) Visuals() []render.Handle {
	out := make([]render.Handle, len(p.visuals))
	copy(out, p.visuals)
	return out
}

// Reset clears the hand and standing flag and releases every owned visual
func (p *Participant) Reset() {
	p.standing = false
	p.hand.Reset()
	for _, h := range p.visuals {
		p.surface.Release(h)
	}
	p.visuals = p.visuals[:0]
}
