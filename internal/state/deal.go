package state

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// DealOrder selects who receives each of the four opening cards
type DealOrder string

const (
	// DealAlternate deals player, dealer, player, dealer
	DealAlternate DealOrder = "alternate"

	// DealSequential deals both player cards before the dealer's
	DealSequential DealOrder = "sequential"
)

// ParseDealOrder validates a configured deal order
func ParseDealOrder(s string) (DealOrder, error) {
	switch o := DealOrder(s); o {
	case DealAlternate, DealSequential:
		return o, nil
	case "":
		return DealAlternate, nil
	default:
		return "", fmt.Errorf("unknown deal order %q (want %q or %q)", s, DealAlternate, DealSequential)
	}
}

// nextDealRecipient picks who gets the next opening card given the
// current hand sizes. done is true once both sides hold target cards.
func nextDealRecipient(order DealOrder, playerCount, dealerCount, target int) (role game.Role, done bool) {
	if playerCount >= target && dealerCount >= target {
		return game.RolePlayer, true
	}
	switch order {
	case DealSequential:
		if playerCount < target {
			return game.RolePlayer, false
		}
		return game.RoleDealer, false
	default:
		if playerCount < target && (playerCount <= dealerCount || dealerCount >= target) {
			return game.RolePlayer, false
		}
		return game.RoleDealer, false
	}
}

// dealState shuffles and deals the opening cards one animation at a
// time. The dealer's second card stays face down.
type dealState struct {
	base
}

func (s *dealState) Enter() {
	s.bump()
	s.session().Deck().Shuffle()
	s.dealNext()
}

func (s *dealState) Exit() {
	s.bump()
}

func (s *dealState) dealNext() {
	sess := s.session()
	role, done := nextDealRecipient(
		s.m.deps.DealOrder,
		sess.Player().Hand().Count(),
		sess.Dealer().Hand().Count(),
		game.TargetHandSize,
	)
	if done {
		s.logger.Debug("Opening cards dealt",
			"player", sess.Player().Hand().Value(),
			"dealer", sess.Dealer().Hand().Value())
		s.next()
		return
	}

	// the dealer's second card is the hole card
	flip := role == game.RolePlayer || sess.Dealer().Hand().Count() == 0
	s.dealTo(sess.Participant(role), flip, s.guard(s.dealNext))
}
