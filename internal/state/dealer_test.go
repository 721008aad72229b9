package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func TestDecideDealer(t *testing.T) {
	tests := []struct {
		dealer, player int
		playerStanding bool
		dealerStanding bool
		want           dealerMove
	}{
		{18, 17, true, false, dealerAhead},
		{12, 11, true, false, dealerAhead},
		{18, 17, false, false, dealerStand},
		{16, 18, true, false, dealerHit},
		{16, 21, false, false, dealerHit},
		{17, 17, true, false, dealerStand},
		{17, 20, true, false, dealerStand},
		{20, 20, true, true, dealerWait},
		{22, 25, true, false, dealerStand},
	}
	for _, tt := range tests {
		got := decideDealer(tt.dealer, tt.player, tt.playerStanding, tt.dealerStanding)
		assert.Equal(t, tt.want, got, "dealer=%d player=%d", tt.dealer, tt.player)
	}
}

func TestNextDealRecipient(t *testing.T) {
	sequence := func(order DealOrder) []game.Role {
		var roles []game.Role
		counts := map[game.Role]int{}
		for {
			role, done := nextDealRecipient(order, counts[game.RolePlayer], counts[game.RoleDealer], game.TargetHandSize)
			if done {
				return roles
			}
			roles = append(roles, role)
			counts[role]++
			require.Less(t, len(roles), 10)
		}
	}

	p, d := game.RolePlayer, game.RoleDealer
	assert.Equal(t, []game.Role{p, d, p, d}, sequence(DealAlternate))
	assert.Equal(t, []game.Role{p, p, d, d}, sequence(DealSequential))
}

func TestParseDealOrder(t *testing.T) {
	o, err := ParseDealOrder("")
	require.NoError(t, err)
	assert.Equal(t, DealAlternate, o)

	o, err = ParseDealOrder("sequential")
	require.NoError(t, err)
	assert.Equal(t, DealSequential, o)

	_, err = ParseDealOrder("random")
	assert.Error(t, err)
}
