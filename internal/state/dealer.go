package state

import (
	"github.com/lox/blackjack/internal/game"
)

// DealerStandValue is the total the dealer stops hitting at
const DealerStandValue = 17

// dealerMove is the dealer's next action
type dealerMove int

const (
	dealerWait dealerMove = iota
	dealerAhead
	dealerHit
	dealerStand
)

func (m dealerMove) String() string {
	switch m {
	case dealerAhead:
		return "ahead"
	case dealerHit:
		return "hit"
	case dealerStand:
		return "stand"
	default:
		return "wait"
	}
}

// decideDealer picks the dealer's move. A dealer already beating a
// standing player stops at once; otherwise it draws below 17 and stands
// on anything else.
func decideDealer(dealerValue, playerValue int, playerStanding, dealerStanding bool) dealerMove {
	switch {
	case dealerValue > playerValue && playerStanding:
		return dealerAhead
	case dealerValue < DealerStandValue:
		return dealerHit
	case !dealerStanding:
		return dealerStand
	default:
		return dealerWait
	}
}

// dealerState reveals the hole card and plays out the dealer's hand
type dealerState struct {
	base
}

func (s *dealerState) Enter() {
	s.bump()

	dealer := s.session().Dealer()
	h, ok := dealer.Visual(1)
	if !ok {
		s.logger.Error("Dealer has no hole card to reveal", "cards", dealer.Hand().Count())
		s.decide()
		return
	}
	x, y := s.layout().Position(game.RoleDealer, game.TargetHandSize)
	s.surface().Animate(h, x, y, s.guard(s.decide), true)
}

func (s *dealerState) Exit() {
	s.bump()
}

func (s *dealerState) decide() {
	sess := s.session()
	dealer, player := sess.Dealer(), sess.Player()

	move := decideDealer(dealer.Hand().Value(), player.Hand().Value(), player.IsStanding(), dealer.IsStanding())
	s.logger.Debug("Dealer decision", "move", move, "dealer", dealer.Hand().Value(), "player", player.Hand().Value())

	switch move {
	case dealerAhead:
		s.next()
	case dealerHit:
		s.dealTo(dealer, true, s.guard(s.decide))
	case dealerStand:
		dealer.Stand()
		s.events().Publish(game.NewStandEvent(game.RoleDealer, dealer.Hand().Value()))
		s.next()
	}
}
