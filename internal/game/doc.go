// Package game holds the blackjack domain: hands and their values,
// participants, the session that owns them, outcome resolution and the
// events published as a hand plays out.
//
// # Basic Usage
//
// A Session is wired to a render.Surface and populated once:
//
//	s := game.NewSession(surface)
//	s.Install(deck.NewDeck(deck.NewRand(42)),
//		game.NewParticipant(game.RolePlayer, surface),
//		game.NewParticipant(game.RoleDealer, surface))
//
// The state package drives the session; once the hand is over the
// result is read with ResolveOutcome:
//
//	switch game.ResolveOutcome(s) {
//	case game.OutcomePlayerBlackjack, game.OutcomePlayerWins, game.OutcomeDealerBust:
//	    // player takes the hand
//	}
//
// None of the types here are safe for concurrent use. A session belongs
// to one logical thread.
package game
