package table

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/state"
)

const animation = 200 * time.Millisecond

type tableHarness struct {
	t     *testing.T
	ctx   context.Context
	clock *quartz.Mock
	trap  *quartz.Trap
	table *Table

	mu     sync.Mutex
	ops    []render.Op
	events []game.GameEvent
}

func newTableHarness(t *testing.T, cards string) *tableHarness {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	clock := quartz.NewMock(t)
	h := &tableHarness{
		t:     t,
		ctx:   ctx,
		clock: clock,
		trap:  clock.Trap().AfterFunc(),
	}

	stacked := deck.MustParseCards(cards)
	h.table = New(Options{
		Clock:             clock,
		AnimationDuration: animation,
		NewDeck:           func() *deck.Deck { return deck.NewStackedDeck(stacked...) },
		Logger:            quietLogger(),
	})
	h.table.Observe(
		func(op render.Op) {
			h.mu.Lock()
			h.ops = append(h.ops, op)
			h.mu.Unlock()
		},
		game.SubscriberFunc(func(e game.GameEvent) {
			h.mu.Lock()
			h.events = append(h.events, e)
			h.mu.Unlock()
		}),
	)

	errc := make(chan error, 1)
	go func() { errc <- h.table.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errc
	})
	t.Cleanup(h.trap.Close)
	return h
}

// completeAnimation waits for the table to start an animation and then
// moves the clock past it
func (h *tableHarness) completeAnimation() {
	h.t.Helper()
	call := h.trap.MustWait(h.ctx)
	call.MustRelease(h.ctx)
	h.clock.Advance(animation).MustWait(h.ctx)
}

func (h *tableHarness) current() state.StateName {
	h.t.Helper()
	var name state.StateName
	require.NoError(h.t, h.table.Do(h.ctx, func(m *state.Machine, _ *render.Scene) {
		name = m.Current()
	}))
	return name
}

func TestTablePlaysHandOnClock(t *testing.T) {
	h := newTableHarness(t, "Th 9c 9d 7s 5h")
	assert.Equal(t, state.StateSetup, h.current())

	require.True(t, h.table.Signal(state.SignalStartGame))
	for i := 0; i < 4; i++ {
		h.completeAnimation()
	}
	assert.Equal(t, state.StatePlayer, h.current())

	require.True(t, h.table.Signal(state.SignalStand))
	h.completeAnimation() // hole card reveal
	h.completeAnimation() // dealer draws 5h
	assert.Equal(t, state.StateGameOver, h.current())

	require.NoError(t, h.table.Do(h.ctx, func(m *state.Machine, scene *render.Scene) {
		assert.Equal(t, 21, m.Session().Dealer().Hand().Value())
		assert.Equal(t, "Dealer Wins!", scene.Message(render.PanelMessage))
		assert.True(t, scene.PanelVisible(render.PanelMessage))
	}))

	h.mu.Lock()
	defer h.mu.Unlock()
	var resolved *game.HandResolvedEvent
	for _, e := range h.events {
		if r, ok := e.(game.HandResolvedEvent); ok {
			resolved = &r
		}
	}
	require.NotNil(t, resolved)
	assert.Equal(t, game.OutcomeDealerWins, resolved.Outcome)

	creates := 0
	for _, op := range h.ops {
		if op.Kind == render.OpCreate {
			creates++
			assert.Equal(t, game.DefaultLayout().SpawnX, op.X)
		}
	}
	assert.Equal(t, 5, creates)
}

func TestTableCardsWaitForClock(t *testing.T) {
	h := newTableHarness(t, "Th 9c 9d 7s")

	require.True(t, h.table.Signal(state.SignalStartGame))
	call := h.trap.MustWait(h.ctx)
	call.MustRelease(h.ctx)

	h.clock.Advance(animation / 2).MustWait(h.ctx)
	require.NoError(t, h.table.Do(h.ctx, func(m *state.Machine, _ *render.Scene) {
		assert.Equal(t, 1, m.Session().Player().Hand().Count())
		assert.Equal(t, 0, m.Session().Dealer().Hand().Count())
		assert.Equal(t, 1, h.table.surface.InFlight())
	}))

	h.clock.Advance(animation / 2).MustWait(h.ctx)
	h.trap.MustWait(h.ctx).MustRelease(h.ctx)
	require.NoError(t, h.table.Do(h.ctx, func(m *state.Machine, _ *render.Scene) {
		assert.Equal(t, 1, m.Session().Dealer().Hand().Count())
	}))
}

func TestTableBustFlipsHoleCardAndStartsOver(t *testing.T) {
	h := newTableHarness(t, "Th 9c 6d 7s Ks")

	require.True(t, h.table.NewGame())
	for i := 0; i < 4; i++ {
		h.completeAnimation()
	}
	require.True(t, h.table.Signal(state.SignalHit))
	h.completeAnimation()
	h.completeAnimation() // hole card flip
	assert.Equal(t, state.StateGameOver, h.current())

	require.True(t, h.table.NewGame())
	h.completeAnimation()
	h.trap.MustWait(h.ctx).MustRelease(h.ctx)
	require.NoError(t, h.table.Do(h.ctx, func(m *state.Machine, scene *render.Scene) {
		assert.Equal(t, state.StateDeal, m.Current())
		assert.Equal(t, 2, scene.Live())
		assert.Equal(t, 1, m.Session().Player().Hand().Count())
		assert.Equal(t, 1, m.Session().Dealer().Hand().Count())
	}))
}
