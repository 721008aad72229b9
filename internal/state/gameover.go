package state

import (
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
)

// gameOverState settles the hand and waits for new-game
type gameOverState struct {
	base
	outcome     game.Outcome
	unsubscribe func()
}

func (s *gameOverState) Enter() {
	s.bump()
	sess := s.session()

	s.outcome = game.ResolveOutcome(sess)
	s.logger.Info("Hand resolved",
		"outcome", s.outcome,
		"player", sess.Player().Hand().Value(),
		"dealer", sess.Dealer().Hand().Value())

	s.surface().SetMessage(render.PanelMessage, s.outcome.Message())
	s.surface().SetMessage(render.PanelSubMessage,
		game.Summary(sess.Player().Hand().Value(), sess.Dealer().Hand().Value()))
	s.surface().TogglePanel(render.PanelMessage, true)

	// a player bust skips the dealer state, so the hole card is still down
	if h, ok := sess.Dealer().Visual(1); ok && s.surface().FaceDown(h) {
		x, y := s.layout().Position(game.RoleDealer, game.TargetHandSize)
		s.surface().Animate(h, x, y, nil, true)
	}

	s.events().Publish(game.NewHandResolvedEvent(s.outcome, sess))
	s.unsubscribe = s.signals().Subscribe(SignalNewGame, s.next)
}

func (s *gameOverState) Exit() {
	s.bump()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.surface().TogglePanel(render.PanelMessage, false)
}
