package game

import "fmt"

// Outcome is the resolved result of a hand
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePlayerBlackjack
	OutcomePlayerBust
	OutcomeDealerBust
	OutcomePush
	OutcomePlayerWins
	OutcomeDealerWins
)

// String returns the outcome's wire name
func (o Outcome) String() string {
	switch o {
	case OutcomePlayerBlackjack:
		return "player_blackjack"
	case OutcomePlayerBust:
		return "player_bust"
	case OutcomeDealerBust:
		return "dealer_bust"
	case OutcomePush:
		return "push"
	case OutcomePlayerWins:
		return "player_wins"
	case OutcomeDealerWins:
		return "dealer_wins"
	default:
		return "unknown"
	}
}

// Message returns the headline shown when the hand ends
func (o Outcome) Message() string {
	switch o {
	case OutcomePlayerBlackjack:
		return "Player has Blackjack! Player Wins!"
	case OutcomePlayerBust:
		return "Player Busted! Dealer Wins!"
	case OutcomeDealerBust:
		return "Dealer Busted! Player Wins!"
	case OutcomePush:
		return "Whoa a Push! No one wins!"
	case OutcomePlayerWins:
		return "Player Wins!"
	case OutcomeDealerWins:
		return "Dealer Wins!"
	default:
		return "..."
	}
}

// PlayerWon reports whether the outcome goes to the player
func (o Outcome) PlayerWon() bool {
	return o == OutcomePlayerBlackjack || o == OutcomeDealerBust || o == OutcomePlayerWins
}

// DealerWon reports whether the outcome goes to the dealer
func (o Outcome) DealerWon() bool {
	return o == OutcomePlayerBust || o == OutcomeDealerWins
}

// ResolveOutcome applies the game-over priority: player natural, player
// bust, dealer bust, push, higher value. The order matters: the push
// check ignores busts, so the bust checks must run first.
func ResolveOutcome(s *Session) Outcome {
	player := s.Player().Hand()
	dealer := s.Dealer().Hand()

	switch {
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return OutcomePlayerBlackjack
	case player.IsBust():
		return OutcomePlayerBust
	case dealer.IsBust():
		return OutcomeDealerBust
	case s.CheckIfPush():
		return OutcomePush
	case player.Value() > dealer.Value():
		return OutcomePlayerWins
	case player.Value() < dealer.Value():
		return OutcomeDealerWins
	default:
		return OutcomeUnknown
	}
}

// Summary formats both hand values, e.g. "Player: 20 vs Dealer: 18"
func Summary(playerValue, dealerValue int) string {
	return fmt.Sprintf("Player: %d vs Dealer: %d", playerValue, dealerValue)
}
