package state

import (
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
)

// playerState takes hit and stand input. A natural skips input
// entirely; a bust ends the hand without the dealer playing.
type playerState struct {
	base
	inFlight bool
	unsubs   []func()
}

func (s *playerState) Enter() {
	s.bump()
	s.inFlight = false

	player := s.session().Player()
	if player.Hand().IsBlackjack() {
		s.logger.Info("Player has blackjack")
		s.next()
		return
	}

	s.surface().TogglePanel(render.PanelGameplay, true)
	s.unsubs = append(s.unsubs,
		s.signals().Subscribe(SignalHit, s.hit),
		s.signals().Subscribe(SignalStand, s.stand),
	)
}

func (s *playerState) Exit() {
	s.bump()
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.inFlight = false
	s.surface().TogglePanel(render.PanelGameplay, false)
}

func (s *playerState) hit() {
	if s.inFlight {
		s.logger.Debug("Hit ignored while a card is moving")
		return
	}
	s.inFlight = true
	s.dealTo(s.session().Player(), true, s.guard(s.checkHand))
}

func (s *playerState) stand() {
	if s.inFlight {
		s.logger.Debug("Stand ignored while a card is moving")
		return
	}
	player := s.session().Player()
	player.Stand()
	s.events().Publish(game.NewStandEvent(game.RolePlayer, player.Hand().Value()))
	s.next()
}

func (s *playerState) checkHand() {
	s.inFlight = false
	hand := s.session().Player().Hand()
	switch {
	case hand.IsBust():
		s.logger.Info("Player busts", "value", hand.Value())
		s.change(StateGameOver)
	case hand.IsBlackjack():
		s.next()
	}
}
