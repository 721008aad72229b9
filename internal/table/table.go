package table

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/state"
)

// Options configures a headless table
type Options struct {
	Faces             render.FaceSource
	Clock             quartz.Clock
	AnimationDuration time.Duration
	Layout            game.Layout
	DealOrder         state.DealOrder
	Welcome           state.Welcome
	NewDeck           func() *deck.Deck
	Logger            *log.Logger
}

// Table is one game session driven by its own Runner
type Table struct {
	runner  *Runner
	surface *Surface
	events  *game.SimpleEventBus
	machine *state.Machine
	logger  *log.Logger
}

// New wires a session, state machine and headless surface together.
// Register observers before calling Run.
func New(opts Options) *Table {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Layout == (game.Layout{}) {
		opts.Layout = game.DefaultLayout()
	}

	runner := NewRunner(opts.Logger)
	surface := NewSurface(opts.Faces, opts.Layout, opts.Clock, runner, opts.AnimationDuration, opts.Logger)
	events := game.NewEventBus()

	machine := state.NewMachine(state.Deps{
		Session:   game.NewSession(surface),
		Events:    events,
		Layout:    opts.Layout,
		DealOrder: opts.DealOrder,
		Welcome:   opts.Welcome,
		NewDeck:   opts.NewDeck,
		Logger:    opts.Logger,
	})

	return &Table{
		runner:  runner,
		surface: surface,
		events:  events,
		machine: machine,
		logger:  opts.Logger.WithPrefix("table"),
	}
}

// Observe registers callbacks for surface operations and game events.
// Either may be nil. Callbacks run on the table's runner.
func (t *Table) Observe(ops func(render.Op), events game.EventSubscriber) {
	if ops != nil {
		t.surface.Observe(ops)
	}
	if events != nil {
		t.events.Subscribe(events)
	}
}

// Run starts the machine and drains the table's jobs until ctx is done
// or a job panics
func (t *Table) Run(ctx context.Context) error {
	t.runner.Post(func() {
		if err := t.machine.Start(); err != nil {
			t.logger.Error("Failed to start table", "error", err)
		}
	})
	return t.runner.Run(ctx)
}

// Signal queues an input signal for the active state. It reports false
// once the table has stopped.
func (t *Table) Signal(sig state.Signal) bool {
	return t.runner.Post(func() {
		t.machine.Signal(sig)
	})
}

// NewGame queues a press of the table's new game button
func (t *Table) NewGame() bool {
	return t.runner.Post(func() {
		t.machine.NewGame()
	})
}

// Do runs fn against the machine on the table's runner and waits for it
func (t *Table) Do(ctx context.Context, fn func(m *state.Machine, scene *render.Scene)) error {
	return t.runner.Do(ctx, func() {
		fn(t.machine, t.surface.Scene())
	})
}

// Done is closed when the table stops
func (t *Table) Done() <-chan struct{} {
	return t.runner.Done()
}
