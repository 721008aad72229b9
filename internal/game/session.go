package game

import (
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/render"
)

// Session holds everything one table shares across hands: the deck, the
// player, the dealer and the surface they draw on. It has no rules of its
// own beyond the winner and push queries.
type Session struct {
	surface render.Surface
	deck    *deck.Deck
	player  *Participant
	dealer  *Participant
}

// NewSession creates an empty session. Deck and participants are
// installed later by the setup state.
func NewSession(surface render.Surface) *Session {
	return &Session{surface: surface}
}

// Install sets the deck and participants. It is called once per session.
func (s *Session) Install(d *deck.Deck, player, dealer *Participant) {
	s.deck = d
	s.player = player
	s.dealer = dealer
}

// Installed reports whether Install has run
func (s *Session) Installed() bool {
	return s.deck != nil && s.player != nil && s.dealer != nil
}

// ResetGame resets both participants and rebuilds the deck. It runs at
// the start of every hand.
func (s *Session) ResetGame() {
	if s.dealer != nil {
		s.dealer.Reset()
	}
	if s.player != nil {
		s.player.Reset()
	}
	if s.deck != nil {
		s.deck.Reset()
	}
}

// Surface returns the session's rendering surface
func (s *Session) Surface() render.Surface {
	return s.surface
}

// Deck returns the session deck
func (s *Session) Deck() *deck.Deck {
	return s.deck
}

// Player returns the player
func (s *Session) Player() *Participant {
	return s.player
}

// Dealer returns the dealer
func (s *Session) Dealer() *Participant {
	return s.dealer
}

// Participant returns the participant with the given role
func (s *Session) Participant(role Role) *Participant {
	if role == RoleDealer {
		return s.dealer
	}
	return s.player
}

// CheckIfWinner reports whether the player is at or under 21 while the
// dealer busted.
func (s *Session) CheckIfWinner() bool {
	return s.player.Hand().Value() <= BlackjackValue && s.dealer.Hand().Value() > BlackjackValue
}

// CheckIfPush reports equal hand values. It does not look at busts; the
// game-over resolution checks busts first.
func (s *Session) CheckIfPush() bool {
	return s.player.Hand().Value() == s.dealer.Hand().Value()
}
