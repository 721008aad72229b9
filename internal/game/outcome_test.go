package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutcome(t *testing.T) {
	tests := []struct {
		name     string
		player   string
		dealer   string
		expected Outcome
	}{
		{name: "player natural beats dealer 21", player: "AsKh", dealer: "7s7h7c", expected: OutcomePlayerBlackjack},
		{name: "both naturals push", player: "AsKh", dealer: "AdQc", expected: OutcomePush},
		{name: "player bust wins over dealer bust", player: "TsKh5c", dealer: "TdQc5s", expected: OutcomePlayerBust},
		{name: "dealer bust", player: "Ts2h", dealer: "TdQc5s", expected: OutcomeDealerBust},
		{name: "push", player: "Ts8h", dealer: "9d9c", expected: OutcomePush},
		{name: "player higher", player: "TsKh", dealer: "9d9c", expected: OutcomePlayerWins},
		{name: "dealer higher", player: "Ts7h", dealer: "9d9c", expected: OutcomeDealerWins},
		{name: "dealer natural beats player 20", player: "TsKh", dealer: "AdQc", expected: OutcomeDealerWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			deal(s.Player(), tt.player)
			deal(s.Dealer(), tt.dealer)
			assert.Equal(t, tt.expected, ResolveOutcome(s))
		})
	}
}

func TestOutcomeMessages(t *testing.T) {
	assert.Equal(t, "Player has Blackjack! Player Wins!", OutcomePlayerBlackjack.Message())
	assert.Equal(t, "Whoa a Push! No one wins!", OutcomePush.Message())
	assert.Equal(t, "...", OutcomeUnknown.Message())
	assert.Equal(t, "Player: 20 vs Dealer: 18", Summary(20, 18))

	assert.True(t, OutcomeDealerBust.PlayerWon())
	assert.True(t, OutcomePlayerBust.DealerWon())
	assert.False(t, OutcomePush.PlayerWon())
	assert.False(t, OutcomePush.DealerWon())
}

func TestLayoutPosition(t *testing.T) {
	l := DefaultLayout()

	x, y := l.Position(RolePlayer, 1)
	assert.Equal(t, 120.0, x)
	assert.Equal(t, -150.0, y)

	x, _ = l.Position(RolePlayer, 3)
	assert.Equal(t, -120.0, x)

	x, y = l.Position(RoleDealer, 2)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 150.0, y)
}
