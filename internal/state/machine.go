// Package state drives a hand of blackjack through its five states.
//
// The Machine holds the fixed, ordered state list (Setup, Deal, Player,
// Dealer, GameOver) and a transition table. States react to input
// Signals and to animation completions from the render.Surface; they
// never block. Everything runs on one logical thread: callers must
// deliver signals and completions from the goroutine that owns the
// Machine (the TUI update loop or a table.Runner).
package state

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
)

// StateName identifies one of the five states
type StateName string

const (
	StateSetup    StateName = "setup"
	StateDeal     StateName = "deal"
	StatePlayer   StateName = "player"
	StateDealer   StateName = "dealer"
	StateGameOver StateName = "game_over"
)

var (
	// ErrUnknownState is returned for a state name outside the state list
	ErrUnknownState = errors.New("unknown state")

	// ErrIllegalTransition is returned for an edge missing from the table
	ErrIllegalTransition = errors.New("illegal transition")
)

// order is the fixed cycle NextState walks
var order = []StateName{StateSetup, StateDeal, StatePlayer, StateDealer, StateGameOver}

// transitions lists the allowed edges out of each state
var transitions = map[StateName][]StateName{
	StateSetup:    {StateDeal},
	StateDeal:     {StatePlayer},
	StatePlayer:   {StateDealer, StateGameOver},
	StateDealer:   {StateGameOver},
	StateGameOver: {StateSetup},
}

// CanTransition reports whether the table allows from -> to
func CanTransition(from, to StateName) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// State is one node of the machine. Enter runs once on the way in, Exit
// once on the way out, before the next state's Enter.
type State interface {
	Name() StateName
	Enter()
	Exit()
}

// Welcome is the text shown by the setup state
type Welcome struct {
	Title    string
	Subtitle string
}

// DefaultWelcome returns the standard welcome text
func DefaultWelcome() Welcome {
	return Welcome{
		Title:    "Welcome to Blackjack!",
		Subtitle: "Dealer stands on 17. Blackjack beats 21.",
	}
}

// Deps are the collaborators injected into the machine and its states
type Deps struct {
	Session   *game.Session
	Signals   *Signals
	Events    game.EventBus
	Layout    game.Layout
	DealOrder DealOrder
	Welcome   Welcome
	// NewDeck builds the session deck on the first setup. Defaults to a
	// wall-clock seeded deck.
	NewDeck func() *deck.Deck
	Logger  *log.Logger
}

// StateChangedEvent is published on every transition
type StateChangedEvent struct {
	From      StateName
	To        StateName
	timestamp time.Time
}

func (e StateChangedEvent) EventType() game.EventType { return game.EventTypeStateChange }
func (e StateChangedEvent) Timestamp() time.Time      { return e.timestamp }

// Machine is the game's finite state machine
type Machine struct {
	deps    Deps
	states  []State
	current State
	logger  *log.Logger
}

// NewMachine builds the five states around deps. Call Start to enter
// Setup.
func NewMachine(deps Deps) *Machine {
	if deps.Signals == nil {
		deps.Signals = NewSignals()
	}
	if deps.Events == nil {
		deps.Events = game.NewEventBus()
	}
	if deps.DealOrder == "" {
		deps.DealOrder = DealAlternate
	}
	if deps.Layout == (game.Layout{}) {
		deps.Layout = game.DefaultLayout()
	}
	if deps.Welcome == (Welcome{}) {
		deps.Welcome = DefaultWelcome()
	}
	if deps.NewDeck == nil {
		deps.NewDeck = func() *deck.Deck { return deck.NewDeck(deck.NewRand(0)) }
	}

	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	m := &Machine{
		deps:   deps,
		logger: deps.Logger.WithPrefix("state"),
	}
	m.states = []State{
		&setupState{base: m.newBase(StateSetup)},
		&dealState{base: m.newBase(StateDeal)},
		&playerState{base: m.newBase(StatePlayer)},
		&dealerState{base: m.newBase(StateDealer)},
		&gameOverState{base: m.newBase(StateGameOver)},
	}
	return m
}

// Start enters the setup state. It may only be called once.
func (m *Machine) Start() error {
	if m.current != nil {
		return fmt.Errorf("machine already started in %s: %w", m.current.Name(), ErrIllegalTransition)
	}
	return m.ChangeState(StateSetup)
}

// Current returns the active state's name, or "" before Start
func (m *Machine) Current() StateName {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Session returns the injected session
func (m *Machine) Session() *game.Session {
	return m.deps.Session
}

// Events returns the bus state changes and game events are published on
func (m *Machine) Events() game.EventBus {
	return m.deps.Events
}

// Signal delivers an input signal to the active state. It reports false
// when the active state is not listening for it.
func (m *Machine) Signal(sig Signal) bool {
	if m.deps.Signals.Emit(sig) {
		return true
	}
	m.logger.Debug("Signal ignored", "signal", sig, "state", m.Current())
	return false
}

// NewGame is the table's single "new game" button: from setup it starts
// the deal, from game over it resets and starts the next hand. It
// reports false in any other state.
func (m *Machine) NewGame() bool {
	switch m.Current() {
	case StateSetup:
		return m.Signal(SignalStartGame)
	case StateGameOver:
		return m.Signal(SignalNewGame) && m.Signal(SignalStartGame)
	default:
		m.logger.Debug("New game ignored mid-hand", "state", m.Current())
		return false
	}
}

// Listening reports whether the active state handles sig
func (m *Machine) Listening(sig Signal) bool {
	return m.deps.Signals.Listening(sig)
}

// NextState advances to the following state in the cycle
func (m *Machine) NextState() error {
	if m.current == nil {
		return m.ChangeState(order[0])
	}
	idx := indexOf(m.current.Name())
	return m.ChangeState(order[(idx+1)%len(order)])
}

// ChangeState exits the active state and enters name. Unknown names and
// edges missing from the transition table are logged and leave the
// active state untouched.
func (m *Machine) ChangeState(name StateName) error {
	next := m.find(name)
	if next == nil {
		err := fmt.Errorf("state %q: %w", name, ErrUnknownState)
		m.logger.Error("State not found", "state", name)
		return err
	}

	from := m.Current()
	if m.current == nil {
		if name != StateSetup {
			m.logger.Error("Machine must start in setup", "state", name)
			return fmt.Errorf("start in %s: %w", name, ErrIllegalTransition)
		}
	} else if !CanTransition(from, name) {
		m.logger.Error("Illegal transition", "from", from, "to", name)
		return fmt.Errorf("%s -> %s: %w", from, name, ErrIllegalTransition)
	}

	if m.current != nil {
		m.logger.Debug("Exiting state", "state", from)
		m.current.Exit()
	}
	m.current = next
	m.deps.Events.Publish(StateChangedEvent{From: from, To: name, timestamp: time.Now()})
	m.logger.Debug("Entering state", "state", name)
	next.Enter()
	return nil
}

func (m *Machine) find(name StateName) State {
	for _, s := range m.states {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func indexOf(name StateName) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

// base carries what every state needs. epoch changes on each Enter and
// Exit so completions issued by an earlier visit can be recognised.
type base struct {
	m      *Machine
	name   StateName
	epoch  int
	logger *log.Logger
}

func (m *Machine) newBase(name StateName) base {
	return base{m: m, name: name, logger: m.logger.With("state", name)}
}

func (b *base) Name() StateName { return b.name }

func (b *base) session() *game.Session { return b.m.deps.Session }
func (b *base) surface() render.Surface { return b.m.deps.Session.Surface() }
func (b *base) signals() *Signals { return b.m.deps.Signals }
func (b *base) events() game.EventBus { return b.m.deps.Events }
func (b *base) layout() game.Layout { return b.m.deps.Layout }
func (b *base) bump() { b.epoch++ }
func (b *base) next() { _ = b.m.NextState() }
func (b *base) change(to StateName) { _ = b.m.ChangeState(to) }

// guard wraps an animation completion so it only runs if the state has
// not been exited since the animation was issued.
func (b *base) guard(fn func()) func() {
	epoch := b.epoch
	return func() {
		if b.epoch != epoch {
			b.logger.Debug("Dropping stale animation callback")
			return
		}
		fn()
	}
}

// dealTo draws a card for p, creates its visual and animates it into
// place. flip false leaves the card face down.
func (b *base) dealTo(p *game.Participant, flip bool, onComplete func()) {
	card := b.session().Deck().MustDraw()
	p.Hit(card)

	h := b.surface().CreateVisual(card.Name())
	p.AddVisual(h)

	x, y := b.layout().Position(p.Role(), p.Hand().Count())
	b.events().Publish(game.NewCardDealtEvent(p.Role(), card, !flip, p.Hand().Value()))
	b.surface().Animate(h, x, y, onComplete, flip)
}
