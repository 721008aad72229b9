package state

import (
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
)

// setupState prepares a fresh hand and waits for start-game
type setupState struct {
	base
	unsubscribe func()
}

func (s *setupState) Enter() {
	s.bump()
	sess := s.session()

	if !sess.Installed() {
		s.logger.Debug("Installing deck and participants")
		sess.Install(
			s.m.deps.NewDeck(),
			game.NewParticipant(game.RolePlayer, s.surface()),
			game.NewParticipant(game.RoleDealer, s.surface()),
		)
	}
	sess.ResetGame()

	welcome := s.m.deps.Welcome
	s.surface().SetMessage(render.PanelMessage, welcome.Title)
	s.surface().SetMessage(render.PanelSubMessage, welcome.Subtitle)
	s.surface().TogglePanel(render.PanelMessage, true)

	s.unsubscribe = s.signals().Subscribe(SignalStartGame, s.next)
}

func (s *setupState) Exit() {
	s.bump()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.surface().TogglePanel(render.PanelMessage, false)
}
