// Package tui plays blackjack in the terminal. The Model is both the
// bubbletea program model and the game's render.Surface, so the state
// machine runs inside Update and animation completions arrive as
// messages on the same loop.
package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/state"
)

// TickFunc schedules msg to be delivered after d
type TickFunc func(d time.Duration, msg tea.Msg) tea.Cmd

// DefaultTick delivers msg after d using tea.Tick
func DefaultTick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Options configures the terminal table
type Options struct {
	Faces             render.FaceSource
	Layout            game.Layout
	DealOrder         state.DealOrder
	Welcome           state.Welcome
	NewDeck           func() *deck.Deck
	AnimationDuration time.Duration
	Tick              TickFunc
	Logger            *log.Logger
}

// animationDoneMsg completes the animation with the given id
type animationDoneMsg struct {
	id int
}

// Model is the bubbletea model for the blackjack table
type Model struct {
	machine *state.Machine
	layout  game.Layout
	logger  *log.Logger

	// Surface state
	scene      *render.Scene
	moving     map[render.Handle]int
	animations map[int]func()
	nextAnim   int
	pending    []tea.Cmd
	duration   time.Duration
	tick       TickFunc

	// UI components
	logViewport viewport.Model
	help        help.Model
	keys        keyMap
	gameLog     []string

	// Dimensions
	width    int
	height   int
	quitting bool
}

// New creates the model and its state machine. The machine starts in
// Init.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Layout == (game.Layout{}) {
		opts.Layout = game.DefaultLayout()
	}
	if opts.Tick == nil {
		opts.Tick = DefaultTick
	}

	logger := opts.Logger.WithPrefix("tui")
	m := &Model{
		layout:      opts.Layout,
		logger:      logger,
		scene:       render.NewScene(opts.Faces, opts.Layout.SpawnX, opts.Layout.SpawnY, logger),
		moving:      make(map[render.Handle]int),
		animations:  make(map[int]func()),
		duration:    opts.AnimationDuration,
		tick:        opts.Tick,
		logViewport: viewport.New(40, 8),
		help:        help.New(),
		keys:        defaultKeyMap(),
	}

	events := game.NewEventBus()
	events.Subscribe(game.SubscriberFunc(m.onEvent))

	m.machine = state.NewMachine(state.Deps{
		Session:   game.NewSession(m),
		Events:    events,
		Layout:    opts.Layout,
		DealOrder: opts.DealOrder,
		Welcome:   opts.Welcome,
		NewDeck:   opts.NewDeck,
		Logger:    opts.Logger,
	})
	return m
}

// Init starts the state machine
func (m *Model) Init() tea.Cmd {
	if err := m.machine.Start(); err != nil {
		m.logger.Error("Failed to start game", "error", err)
	}
	return m.flush()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width-4, 10)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewGame):
			m.machine.NewGame()
		case key.Matches(msg, m.keys.Hit):
			m.machine.Signal(state.SignalHit)
		case key.Matches(msg, m.keys.Stand):
			m.machine.Signal(state.SignalStand)
		case key.Matches(msg, m.keys.Up):
			m.logViewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.logViewport.ScrollDown(1)
		}

	case animationDoneMsg:
		m.completeAnimation(msg.id)
	}

	return m, m.flush()
}

// flush returns the commands queued by surface calls since the last
// message
func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) completeAnimation(id int) {
	done, ok := m.animations[id]
	if !ok {
		m.logger.Warn("Unknown animation completed", "id", id)
		return
	}
	delete(m.animations, id)
	done()
}

func (m *Model) onEvent(e game.GameEvent) {
	if _, ok := e.(state.StateChangedEvent); ok {
		return
	}
	m.AddLogEntry(game.FormatEvent(e))
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the game log lines
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// State returns the active game state
func (m *Model) State() state.StateName {
	return m.machine.Current()
}

// Session returns the game session behind the table
func (m *Model) Session() *game.Session {
	return m.machine.Session()
}

// Animating reports whether any card is still moving
func (m *Model) Animating() bool {
	return len(m.animations) > 0
}
